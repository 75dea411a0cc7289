package pip

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bpmsetup/internal/logging"
	"bpmsetup/internal/runner"
)

// PackageResult is the outcome of a single install attempt.
type PackageResult struct {
	Name   string
	Detail string
}

// Report partitions the attempted packages, preserving input order
// within each slice.
type Report struct {
	Succeeded []PackageResult
	Failed    []PackageResult
}

// Attempted returns the total number of install attempts.
func (r Report) Attempted() int {
	return len(r.Succeeded) + len(r.Failed)
}

// AllSucceeded reports whether no attempt failed.
func (r Report) AllSucceeded() bool {
	return len(r.Failed) == 0
}

// Installer drives pip through a resolved interpreter.
type Installer struct {
	run      runner.Runner
	env      runner.Env
	python   string
	indexURL string
	logger   *slog.Logger
}

// NewInstaller constructs an Installer bound to the given interpreter
// and index mirror.
func NewInstaller(run runner.Runner, env runner.Env, python, indexURL string, logger *slog.Logger) *Installer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Installer{run: run, env: env, python: python, indexURL: indexURL, logger: logger}
}

// EnsurePip bootstraps pip via ensurepip when `python -m pip` does not
// work. Best effort: a failure is logged and installation proceeds,
// where per-package attempts will record the real damage.
func (i *Installer) EnsurePip(ctx context.Context) {
	result, err := i.run.Run(ctx, i.env, runner.Command{
		Name: i.python,
		Args: []string{"-m", "pip", "--version"},
	})
	if err == nil && result.Success() {
		return
	}

	i.logger.Info("pip not responding, bootstrapping via ensurepip")
	result, err = i.run.Run(ctx, i.env, runner.Command{
		Name: i.python,
		Args: []string{"-m", "ensurepip", "--upgrade"},
	})
	if err != nil {
		i.logger.Warn("ensurepip failed", logging.Error(err))
		return
	}
	if !result.Success() {
		i.logger.Warn("ensurepip failed", logging.String("detail", lastLine(result.Stderr)))
	}
}

// InstallAll attempts every package in order. A failed install never
// stops the loop.
func (i *Installer) InstallAll(ctx context.Context, packages []string) Report {
	var report Report
	for _, name := range packages {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		i.logger.Info("installing package", logging.String("package", name))

		result, err := i.run.Run(ctx, i.env, runner.Command{
			Name: i.python,
			Args: []string{"-m", "pip", "install", "--index-url", i.indexURL, name},
		})
		switch {
		case err != nil:
			i.logger.Warn("package install failed", logging.String("package", name), logging.Error(err))
			report.Failed = append(report.Failed, PackageResult{Name: name, Detail: err.Error()})
		case !result.Success():
			detail := fmt.Sprintf("pip exited %d: %s", result.ExitCode, lastLine(result.Stderr))
			i.logger.Warn("package install failed", logging.String("package", name), logging.String("detail", detail))
			report.Failed = append(report.Failed, PackageResult{Name: name, Detail: detail})
		default:
			report.Succeeded = append(report.Succeeded, PackageResult{Name: name})
		}
	}
	return report
}

func lastLine(output string) string {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return "(no output)"
	}
	lines := strings.Split(trimmed, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
