package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Runtime identifies the interpreter the downstream classifiers need.
type Runtime struct {
	// Binaries lists invocation names tried in order ("python3", "python").
	Binaries []string `toml:"binaries"`
	// MinVersion is advisory; presence is not version-gated.
	MinVersion string `toml:"min_version"`
}

// Acquisition describes the two install sources tried when the runtime
// is absent: a package-manager command first, then a direct download of
// an installer run unattended.
type Acquisition struct {
	PrimaryCommand         []string `toml:"primary_command"`
	FallbackURL            string   `toml:"fallback_url"`
	FallbackInstallerArgs  []string `toml:"fallback_installer_args"`
	DownloadTimeoutSeconds int      `toml:"download_timeout_seconds"`
	// ExtraBinDirs are conventional install locations probed after a
	// successful install so the current process can see the new binary.
	ExtraBinDirs []string `toml:"extra_bin_dirs"`
}

// Packages lists the pip dependencies and the index mirror they resolve
// against.
type Packages struct {
	IndexURL string   `toml:"index_url"`
	Names    []string `toml:"names"`
}

// Workspace names the directories the classifiers expect next to their
// working directory.
type Workspace struct {
	Root        string   `toml:"root"`
	Directories []string `toml:"directories"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for bpmsetup.
type Config struct {
	Runtime     Runtime     `toml:"runtime"`
	Acquisition Acquisition `toml:"acquisition"`
	Packages    Packages    `toml:"packages"`
	Workspace   Workspace   `toml:"workspace"`
	Logging     Logging     `toml:"logging"`
}

// WorkspacePaths returns the absolute path of every workspace directory.
func (c *Config) WorkspacePaths() []string {
	paths := make([]string, 0, len(c.Workspace.Directories))
	for _, name := range c.Workspace.Directories {
		paths = append(paths, filepath.Join(c.Workspace.Root, name))
	}
	return paths
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/bpmsetup/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing
// file is not an error: defaults apply unchanged. The returned path and
// boolean report which file, if any, was read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed != "" {
		expanded, err := ExpandPath(trimmed)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s not found", expanded)
			}
			return "", false, fmt.Errorf("check config path: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(defaultPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultPath, false, nil
		}
		return "", false, fmt.Errorf("check config path: %w", err)
	}
	return defaultPath, true, nil
}

// CreateSample writes the embedded sample configuration to target.
func CreateSample(target string) error {
	return os.WriteFile(target, []byte(sampleConfig), 0o644)
}

// ExpandPath resolves tilde shortcuts and returns an absolute path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
