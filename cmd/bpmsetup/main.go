package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if msg, ok := failureMessage(err); ok {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}

// failureMessage reports what to print for a fatal error. Cancellation
// is silent: the operator interrupted the run on purpose.
func failureMessage(err error) (string, bool) {
	if errors.Is(err, context.Canceled) {
		return "", false
	}
	return "bpmsetup: " + err.Error(), true
}
