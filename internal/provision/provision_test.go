package provision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"bpmsetup/internal/acquire"
	"bpmsetup/internal/config"
	"bpmsetup/internal/logging"
	"bpmsetup/internal/testsupport"
)

func newProvisioner(t *testing.T, cfg *config.Config, fake *testsupport.FakeRunner) *Provisioner {
	t.Helper()
	lockPath := filepath.Join(t.TempDir(), "provision.lock")
	return New(cfg, logging.NewNop(), fake, WithLockPath(lockPath))
}

// stagePython makes an interpreter resolvable via PATH.
func stagePython(t *testing.T) {
	t.Helper()
	binDir := t.TempDir()
	testsupport.StubBinary(t, binDir, "python3")
	t.Setenv("PATH", binDir)
}

func TestRunWithRuntimePresent(t *testing.T) {
	stagePython(t)
	cfg := testsupport.NewConfig(t)
	fake := testsupport.NewFakeRunner()

	outcome, err := newProvisioner(t, cfg, fake).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	names := fake.CallNames()
	// pip probe + one install per package; acquisition skipped entirely.
	wantCalls := 1 + len(cfg.Packages.Names)
	if len(names) != wantCalls {
		t.Fatalf("expected %d invocations, got %v", wantCalls, names)
	}
	for _, name := range names {
		if name != "python3" {
			t.Fatalf("unexpected invocation %q (acquisition must be skipped)", name)
		}
	}

	if !outcome.RuntimeAcquired || outcome.RuntimeBinary != "python3" {
		t.Fatalf("unexpected runtime outcome: %+v", outcome)
	}
	if !outcome.Report.AllSucceeded() || outcome.Report.Attempted() != len(cfg.Packages.Names) {
		t.Fatalf("unexpected report: %+v", outcome.Report)
	}
	if len(outcome.CreatedDirs) != len(cfg.Workspace.Directories) {
		t.Fatalf("expected %d dirs created, got %v", len(cfg.Workspace.Directories), outcome.CreatedDirs)
	}
	for _, name := range cfg.Workspace.Directories {
		info, err := os.Stat(filepath.Join(cfg.Workspace.Root, name))
		if err != nil || !info.IsDir() {
			t.Fatalf("workspace dir %s missing: %v", name, err)
		}
	}
}

func TestRunInstallsInListedOrder(t *testing.T) {
	stagePython(t)
	cfg := testsupport.NewConfig(t)
	fake := testsupport.NewFakeRunner()

	if _, err := newProvisioner(t, cfg, fake).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	calls := fake.Calls()[1:] // skip the pip version probe
	for i, name := range cfg.Packages.Names {
		args := calls[i].Args
		if args[len(args)-1] != name {
			t.Fatalf("install %d: expected package %q, got args %v", i, name, args)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	stagePython(t)
	cfg := testsupport.NewConfig(t)
	fake := testsupport.NewFakeRunner()
	p := newProvisioner(t, cfg, fake)

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	outcome, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(outcome.CreatedDirs) != 0 {
		t.Fatalf("second run should create nothing, created %v", outcome.CreatedDirs)
	}

	entries, err := os.ReadDir(cfg.Workspace.Root)
	if err != nil {
		t.Fatalf("read workspace: %v", err)
	}
	if len(entries) != len(cfg.Workspace.Directories) {
		t.Fatalf("expected exactly %d workspace entries, got %d", len(cfg.Workspace.Directories), len(entries))
	}
}

func TestRunHaltsWhenAcquisitionExhausted(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	cfg := testsupport.NewConfig(t)
	fake := testsupport.NewFakeRunner()
	fake.ExitWith("fake-package-manager", 1)

	outcome, err := newProvisioner(t, cfg, fake).Run(context.Background())
	if !errors.Is(err, acquire.ErrRuntimeUnavailable) {
		t.Fatalf("expected ErrRuntimeUnavailable, got %v", err)
	}

	// Later stages must not have run.
	if outcome.Report.Attempted() != 0 {
		t.Fatalf("no installs should be attempted, got %+v", outcome.Report)
	}
	for _, name := range cfg.Workspace.Directories {
		if _, statErr := os.Stat(filepath.Join(cfg.Workspace.Root, name)); !errors.Is(statErr, os.ErrNotExist) {
			t.Fatalf("workspace dir %s should not exist after halt", name)
		}
	}
}

func TestRunSessionRefreshHaltsBeforeInstall(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	cfg := testsupport.NewConfig(t)
	fake := testsupport.NewFakeRunner()
	// Primary install "succeeds" but leaves nothing visible.

	outcome, err := newProvisioner(t, cfg, fake).Run(context.Background())
	if !errors.Is(err, acquire.ErrSessionRefreshRequired) {
		t.Fatalf("expected ErrSessionRefreshRequired, got %v", err)
	}
	if outcome.Report.Attempted() != 0 {
		t.Fatalf("no installs should be attempted, got %+v", outcome.Report)
	}
}

func TestRunContinuesPastFailedPackage(t *testing.T) {
	stagePython(t)
	cfg := testsupport.NewConfig(t)
	fake := testsupport.NewFakeRunner()
	fake.ExitWithArg("python3", "librosa", 1)

	outcome, err := newProvisioner(t, cfg, fake).Run(context.Background())
	if err != nil {
		t.Fatalf("a failed package must not halt the run: %v", err)
	}
	if outcome.Report.Attempted() != len(cfg.Packages.Names) {
		t.Fatalf("all packages should be attempted, got %d", outcome.Report.Attempted())
	}
	if len(outcome.Report.Failed) != 1 || outcome.Report.Failed[0].Name != "librosa" {
		t.Fatalf("unexpected failed set: %+v", outcome.Report.Failed)
	}
	// Workspace stage still ran.
	if len(outcome.CreatedDirs) != len(cfg.Workspace.Directories) {
		t.Fatalf("workspace stage should still run, created %v", outcome.CreatedDirs)
	}
}

func TestRunHonorsCustomAcquirer(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	cfg := testsupport.NewConfig(t)
	fake := testsupport.NewFakeRunner()

	// The substituted acquirer's "install" lands python3 in a dir only
	// it knows to probe.
	installDir := t.TempDir()
	testsupport.StubBinary(t, installDir, "python3")
	acqCfg := testsupport.NewConfig(t)
	acqCfg.Acquisition.ExtraBinDirs = []string{installDir}
	a := acquire.New(acqCfg, logging.NewNop(), fake)

	lockPath := filepath.Join(t.TempDir(), "provision.lock")
	p := New(cfg, logging.NewNop(), fake, WithLockPath(lockPath), WithAcquirer(a))

	outcome, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !outcome.RuntimeAcquired || outcome.RuntimeBinary != "python3" {
		t.Fatalf("interpreter should resolve through the substituted acquirer: %+v", outcome)
	}
	if names := fake.CallNames(); names[0] != "fake-package-manager" {
		t.Fatalf("expected the acquirer's primary command first, got %v", names)
	}
}

func TestRunRejectsConcurrentRuns(t *testing.T) {
	stagePython(t)
	cfg := testsupport.NewConfig(t)
	lockPath := filepath.Join(t.TempDir(), "provision.lock")

	p1 := New(cfg, logging.NewNop(), testsupport.NewFakeRunner(), WithLockPath(lockPath))
	p2 := New(cfg, logging.NewNop(), testsupport.NewFakeRunner(), WithLockPath(lockPath))

	held := flock.New(lockPath)
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("take lock out of band: locked=%v err=%v", locked, err)
	}

	if _, err := p2.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	if err := held.Unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, err := p1.Run(context.Background()); err != nil {
		t.Fatalf("run after release: %v", err)
	}
}
