package preflight

import (
	"context"
	"path/filepath"

	"bpmsetup/internal/config"
	"bpmsetup/internal/deps"
	"bpmsetup/internal/runner"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every readiness check for the given config.
func RunAll(ctx context.Context, cfg *config.Config, env runner.Env, run runner.Runner) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	runtimeResult, python := CheckRuntime(env, cfg.Runtime.Binaries)
	results = append(results, runtimeResult)

	if python != "" {
		results = append(results, CheckPip(ctx, run, env, python))
	} else {
		results = append(results, Result{Name: "pip", Detail: "no interpreter to probe"})
	}

	results = append(results, CheckMirror(ctx, cfg.Packages.IndexURL))

	for _, name := range cfg.Workspace.Directories {
		results = append(results, CheckDirectoryAccess(name, filepath.Join(cfg.Workspace.Root, name)))
	}

	return results
}

// CheckRuntime reports interpreter availability and returns the
// resolved invocation name when present.
func CheckRuntime(env runner.Env, binaries []string) (Result, string) {
	const name = "Python runtime"
	statuses := deps.CheckBinaries(env, []deps.Requirement{
		{Name: name, Commands: binaries, Description: "Required to run the classifier scripts"},
	})
	status := statuses[0]
	if !status.Available {
		return Result{Name: name, Detail: status.Detail}, ""
	}
	return Result{Name: name, Passed: true, Detail: status.Command}, status.Command
}
