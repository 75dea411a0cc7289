package testsupport

import (
	"testing"

	"bpmsetup/internal/config"
)

// NewConfig returns a default config rooted in a fresh temp workspace,
// with acquisition sources pointed at harmless placeholders.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Workspace.Root = t.TempDir()
	cfg.Acquisition.PrimaryCommand = []string{"fake-package-manager", "install", "python3"}
	cfg.Acquisition.FallbackURL = ""
	cfg.Acquisition.FallbackInstallerArgs = nil
	cfg.Acquisition.ExtraBinDirs = nil
	return &cfg
}
