package acquire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"bpmsetup/internal/config"
	"bpmsetup/internal/deps"
	"bpmsetup/internal/logging"
	"bpmsetup/internal/runner"
)

var (
	// ErrRuntimeUnavailable is the single fatal condition of a
	// provisioning run: neither install source produced a usable
	// interpreter.
	ErrRuntimeUnavailable = errors.New("python runtime unavailable: both install sources failed; install Python 3 manually and run bpmsetup again")

	// ErrSessionRefreshRequired means the install succeeded but the new
	// interpreter is not visible to this process. Terminal, not an error.
	ErrSessionRefreshRequired = errors.New("python was installed but is not visible to this session: open a new terminal and run bpmsetup again")
)

// Option configures an Acquirer.
type Option func(*Acquirer)

// WithHTTPClient overrides the download client.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Acquirer) {
		if client != nil {
			a.client = client
		}
	}
}

// WithMaxDownloadTries overrides the download retry budget.
func WithMaxDownloadTries(tries uint) Option {
	return func(a *Acquirer) {
		if tries > 0 {
			a.maxDownloadTries = tries
		}
	}
}

// Acquirer runs the fallback acquisition chain.
type Acquirer struct {
	cfg              *config.Config
	logger           *slog.Logger
	run              runner.Runner
	client           *http.Client
	maxDownloadTries uint
}

// New constructs an Acquirer. A zero download timeout in the config
// leaves the HTTP client unbounded.
func New(cfg *config.Config, logger *slog.Logger, run runner.Runner, opts ...Option) *Acquirer {
	if logger == nil {
		logger = logging.NewNop()
	}
	a := &Acquirer{
		cfg:              cfg,
		logger:           logger,
		run:              run,
		client:           &http.Client{Timeout: time.Duration(cfg.Acquisition.DownloadTimeoutSeconds) * time.Second},
		maxDownloadTries: defaultMaxDownloadTries,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Acquire returns an Env through which the interpreter resolves. When
// the runtime is already present the input Env is returned unchanged.
func (a *Acquirer) Acquire(ctx context.Context, env runner.Env) (runner.Env, error) {
	if name, ok := deps.ResolvePython(env, a.cfg.Runtime.Binaries); ok {
		a.logger.Info("python already present, skipping acquisition", logging.String("binary", name))
		return env, nil
	}

	a.logger.Info("python not found, trying package manager install")
	primaryErr := a.tryPrimary(ctx, env)
	if primaryErr == nil {
		return a.verifyVisible(env)
	}
	a.logger.Warn("package manager install failed, trying direct download", logging.Error(primaryErr))

	if fallbackErr := a.tryFallback(ctx, env); fallbackErr != nil {
		a.logger.Error("direct download install failed", logging.Error(fallbackErr))
		return env, fmt.Errorf("%w (package manager: %v; direct download: %v)", ErrRuntimeUnavailable, primaryErr, fallbackErr)
	}
	return a.verifyVisible(env)
}

func (a *Acquirer) tryPrimary(ctx context.Context, env runner.Env) error {
	argv := a.cfg.Acquisition.PrimaryCommand
	if len(argv) == 0 {
		return errors.New("no package manager command configured")
	}
	result, err := a.run.Run(ctx, env, runner.Command{Name: argv[0], Args: argv[1:]})
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("%s exited %d: %s", argv[0], result.ExitCode, lastLine(result.Stderr))
	}
	return nil
}

func (a *Acquirer) tryFallback(ctx context.Context, env runner.Env) error {
	url := a.cfg.Acquisition.FallbackURL
	if url == "" {
		return errors.New("no fallback download source configured")
	}

	artifact, err := a.download(ctx, url)
	if err != nil {
		return err
	}
	if runtime.GOOS != "windows" {
		if err := os.Chmod(artifact, 0o755); err != nil {
			return fmt.Errorf("mark installer executable: %w", err)
		}
	}

	a.logger.Info("running installer", logging.String("installer", filepath.Base(artifact)))
	result, err := a.run.Run(ctx, env, runner.Command{Name: artifact, Args: a.cfg.Acquisition.FallbackInstallerArgs})
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("installer exited %d: %s", result.ExitCode, lastLine(result.Stderr))
	}

	// Artifact cleanup happens on the success path only.
	if err := os.RemoveAll(filepath.Dir(artifact)); err != nil {
		a.logger.Warn("could not remove downloaded installer", logging.Error(err))
	}
	return nil
}

// verifyVisible re-resolves the interpreter through env extended with
// the configured install locations. A successful install that the
// current process still cannot see requires a fresh session.
func (a *Acquirer) verifyVisible(env runner.Env) (runner.Env, error) {
	extended := env
	for _, dir := range a.cfg.Acquisition.ExtraBinDirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			extended = extended.Prepend(dir)
		}
	}
	if name, ok := deps.ResolvePython(extended, a.cfg.Runtime.Binaries); ok {
		a.logger.Info("python installed", logging.String("binary", name))
		return extended, nil
	}
	return env, ErrSessionRefreshRequired
}

func lastLine(output string) string {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return "(no output)"
	}
	lines := strings.Split(trimmed, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
