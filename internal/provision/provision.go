package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"bpmsetup/internal/acquire"
	"bpmsetup/internal/config"
	"bpmsetup/internal/deps"
	"bpmsetup/internal/logging"
	"bpmsetup/internal/pip"
	"bpmsetup/internal/runner"
	"bpmsetup/internal/workspace"
)

// ErrAlreadyRunning means another provisioning run holds the lock.
var ErrAlreadyRunning = errors.New("another bpmsetup run is already in progress")

// Outcome summarizes a completed (or halted) provisioning run.
type Outcome struct {
	RunID           string
	RuntimeBinary   string
	RuntimeAcquired bool
	Report          pip.Report
	CreatedDirs     []string
}

// Provisioner drives the bootstrap sequence.
type Provisioner struct {
	cfg      *config.Config
	logger   *slog.Logger
	run      runner.Runner
	acquirer *acquire.Acquirer
	lockPath string
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithAcquirer substitutes the acquisition stage.
func WithAcquirer(a *acquire.Acquirer) Option {
	return func(p *Provisioner) {
		if a != nil {
			p.acquirer = a
		}
	}
}

// WithLockPath overrides the run-lock location.
func WithLockPath(path string) Option {
	return func(p *Provisioner) {
		if path != "" {
			p.lockPath = path
		}
	}
}

// New constructs a Provisioner.
func New(cfg *config.Config, logger *slog.Logger, run runner.Runner, opts ...Option) *Provisioner {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Provisioner{
		cfg:      cfg,
		logger:   logger,
		run:      run,
		lockPath: defaultLockPath(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.acquirer == nil {
		p.acquirer = acquire.New(cfg, logger, run)
	}
	return p
}

// Run executes the four stages in order. The returned Outcome is valid
// even when err is non-nil and reflects how far the run got; partial
// state is left in place (no rollback).
func (p *Provisioner) Run(ctx context.Context) (*Outcome, error) {
	start := time.Now()
	outcome := &Outcome{RunID: uuid.NewString()}
	logger := p.logger.With(logging.String("run_id", outcome.RunID))

	if err := os.MkdirAll(filepath.Dir(p.lockPath), 0o755); err != nil {
		return outcome, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(p.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return outcome, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return outcome, ErrAlreadyRunning
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	// Stages 1+2: presence check and acquisition fallback chain.
	env, err := p.acquirer.Acquire(ctx, runner.Env{})
	if err != nil {
		return outcome, err
	}
	python, ok := deps.ResolvePython(env, p.cfg.Runtime.Binaries)
	if !ok {
		// Acquire returned success, so the interpreter vanished between
		// resolution and now.
		return outcome, acquire.ErrSessionRefreshRequired
	}
	outcome.RuntimeBinary = python
	outcome.RuntimeAcquired = true

	// Stage 3: best-effort dependency installation.
	logger.Info("installing dependencies",
		logging.Int("count", len(p.cfg.Packages.Names)),
		logging.String("index", p.cfg.Packages.IndexURL))
	installer := pip.NewInstaller(p.run, env, python, p.cfg.Packages.IndexURL, logger)
	installer.EnsurePip(ctx)
	outcome.Report = installer.InstallAll(ctx, p.cfg.Packages.Names)
	if failed := len(outcome.Report.Failed); failed > 0 {
		logger.Warn("some packages failed to install", logging.Int("failed", failed))
	}

	// Stage 4: workspace initialization.
	created, err := workspace.Ensure(p.cfg.Workspace.Root, p.cfg.Workspace.Directories)
	outcome.CreatedDirs = created
	if err != nil {
		return outcome, err
	}
	logger.Info("workspace ready",
		logging.String("root", p.cfg.Workspace.Root),
		logging.Int("created", len(created)))

	logger.Info("provisioning complete",
		logging.Bool("runtime_acquired", outcome.RuntimeAcquired),
		logging.Int("packages_failed", len(outcome.Report.Failed)),
		logging.Duration("elapsed", time.Since(start)))
	return outcome, nil
}

func defaultLockPath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, "bpmsetup", "provision.lock")
}
