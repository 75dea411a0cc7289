package preflight

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"bpmsetup/internal/runner"
)

// CheckPip verifies that pip responds through the given interpreter.
func CheckPip(ctx context.Context, run runner.Runner, env runner.Env, python string) Result {
	const name = "pip"

	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	result, err := run.Run(checkCtx, env, runner.Command{Name: python, Args: []string{"-m", "pip", "--version"}})
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if !result.Success() {
		return Result{Name: name, Detail: fmt.Sprintf("%s -m pip exited %d", python, result.ExitCode)}
	}
	return Result{Name: name, Passed: true, Detail: strings.TrimSpace(result.Stdout)}
}

// CheckMirror verifies that the package index mirror answers HTTP
// requests. Any response, including an error status, proves
// reachability; only transport failures count against the mirror.
func CheckMirror(ctx context.Context, indexURL string) Result {
	const name = "Index mirror"

	trimmed := strings.TrimSpace(indexURL)
	if trimmed == "" {
		return Result{Name: name, Detail: "missing url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodHead, trimmed, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("reachability check failed (%v)", err)}
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%v)", err)}
	}
	defer resp.Body.Close()

	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d)", trimmed, resp.StatusCode)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (missing; run bpmsetup to create it)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := accessCheck(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}
