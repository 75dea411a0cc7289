package testsupport

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"bpmsetup/internal/runner"
)

// Call records a single invocation seen by a FakeRunner. Name is the
// command exactly as invoked; Base is its path-stripped form.
type Call struct {
	Name string
	Base string
	Args []string
}

// FakeRunner is a scripted runner.Runner. Exit codes are looked up by
// the command's base name; unscripted commands succeed. Every call is
// recorded in order.
type FakeRunner struct {
	mu        sync.Mutex
	calls     []Call
	exitCodes map[string]int
	errs      map[string]error
	argRules  []argRule
}

type argRule struct {
	name string
	arg  string
	code int
}

// NewFakeRunner returns an empty scripted runner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		exitCodes: make(map[string]int),
		errs:      make(map[string]error),
	}
}

// ExitWith makes every invocation of name exit with code.
func (f *FakeRunner) ExitWith(name string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exitCodes[name] = code
}

// ExitWithArg makes invocations of name that carry arg exit with code.
// Useful when one binary serves many operations, like pip installs.
func (f *FakeRunner) ExitWithArg(name, arg string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.argRules = append(f.argRules, argRule{name: name, arg: arg, code: code})
}

// FailWith makes every invocation of name return err (process never ran).
func (f *FakeRunner) FailWith(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[name] = err
}

// Run records the call and replays the scripted outcome.
func (f *FakeRunner) Run(_ context.Context, _ runner.Env, cmd runner.Command) (runner.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := filepath.Base(cmd.Name)
	f.calls = append(f.calls, Call{Name: cmd.Name, Base: key, Args: append([]string(nil), cmd.Args...)})

	if err, ok := f.errs[key]; ok {
		return runner.Result{}, err
	}
	for _, rule := range f.argRules {
		if rule.name == key && slices.Contains(cmd.Args, rule.arg) {
			return runner.Result{ExitCode: rule.code, Stderr: fmt.Sprintf("%s: scripted failure\n", rule.arg)}, nil
		}
	}
	if code, ok := f.exitCodes[key]; ok && code != 0 {
		return runner.Result{ExitCode: code, Stderr: fmt.Sprintf("%s: scripted failure\n", key)}, nil
	}
	return runner.Result{}, nil
}

// Calls returns the recorded invocations in order.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallNames returns just the invoked command names, in order.
func (f *FakeRunner) CallNames() []string {
	calls := f.Calls()
	names := make([]string, 0, len(calls))
	for _, call := range calls {
		names = append(names, call.Base)
	}
	return names
}

// Trace renders the call sequence as "name arg arg" lines for compact
// assertions.
func (f *FakeRunner) Trace() []string {
	calls := f.Calls()
	lines := make([]string, 0, len(calls))
	for _, call := range calls {
		lines = append(lines, strings.TrimSpace(call.Base+" "+strings.Join(call.Args, " ")))
	}
	return lines
}

var _ runner.Runner = (*FakeRunner)(nil)
