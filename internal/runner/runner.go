package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Command describes a single external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// Result captures the outcome of a completed invocation. A nonzero
// ExitCode is an ordinary outcome, not an error: failure to even start
// the process is what surfaces as an error from Run.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, env Env, cmd Command) (Result, error)
}

// System runs commands on the host, resolving binaries through the
// provided Env and exporting its search path to the child process.
type System struct{}

// Run executes the command and waits for it to finish.
func (System) Run(ctx context.Context, env Env, command Command) (Result, error) {
	name := strings.TrimSpace(command.Name)
	if name == "" {
		return Result{}, errors.New("command name required")
	}
	resolved, err := env.LookPath(name)
	if err != nil {
		return Result{}, fmt.Errorf("resolve %q: %w", name, err)
	}

	cmd := commandContext(ctx, resolved, command.Args...)
	cmd.Dir = command.Dir
	cmd.Env = env.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("run %q: %w", name, runErr)
	}
	return result, nil
}

var _ Runner = System{}
