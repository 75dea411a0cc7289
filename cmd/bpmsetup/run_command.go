package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"bpmsetup/internal/acquire"
	"bpmsetup/internal/provision"
	"bpmsetup/internal/runner"
)

func runProvision(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.newLogger()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	provisioner := provision.New(cfg, logger, runner.System{})
	outcome, err := provisioner.Run(cmd.Context())

	switch {
	case errors.Is(err, acquire.ErrSessionRefreshRequired):
		// Terminal but not a failure: the install worked, the session didn't.
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Python was installed, but this session cannot see it yet.")
		fmt.Fprintln(out, "Open a new terminal and run bpmsetup again to finish provisioning.")
		waitForAck(out)
		return nil
	case errors.Is(err, acquire.ErrRuntimeUnavailable):
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Could not install Python from either source.")
		fmt.Fprintln(out, "Install Python 3 manually (https://www.python.org/downloads/) and run bpmsetup again.")
		waitForAck(out)
		return err
	case err != nil:
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, renderReportTable(outcome))
	if failed := len(outcome.Report.Failed); failed > 0 {
		fmt.Fprintf(out, "\n%d package(s) failed to install; the classifiers may not run until they are fixed.\n", failed)
	} else {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Environment ready. Place board.csv next to the classifier and run it.")
	}
	waitForAck(out)
	return nil
}

// waitForAck blocks until the operator presses Enter, but only when
// stdin is an interactive terminal.
func waitForAck(out io.Writer) {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return
	}
	fmt.Fprint(out, "\nPress Enter to close...")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}
