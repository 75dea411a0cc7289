package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeRuntime()
	if err := c.normalizeAcquisition(); err != nil {
		return err
	}
	c.normalizePackages()
	if err := c.normalizeWorkspace(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeRuntime() {
	c.Runtime.Binaries = trimNonEmpty(c.Runtime.Binaries)
	if len(c.Runtime.Binaries) == 0 {
		c.Runtime.Binaries = Default().Runtime.Binaries
	}
	c.Runtime.MinVersion = strings.TrimSpace(c.Runtime.MinVersion)
}

func (c *Config) normalizeAcquisition() error {
	c.Acquisition.PrimaryCommand = trimNonEmpty(c.Acquisition.PrimaryCommand)
	c.Acquisition.FallbackURL = strings.TrimSpace(c.Acquisition.FallbackURL)

	// Installer args run without a shell, so tilde shortcuts must be
	// expanded here.
	args := make([]string, 0, len(c.Acquisition.FallbackInstallerArgs))
	for _, arg := range c.Acquisition.FallbackInstallerArgs {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if strings.HasPrefix(arg, "~") {
			expanded, err := ExpandPath(arg)
			if err != nil {
				return fmt.Errorf("acquisition.fallback_installer_args: %w", err)
			}
			arg = expanded
		}
		args = append(args, arg)
	}
	c.Acquisition.FallbackInstallerArgs = args

	dirs := make([]string, 0, len(c.Acquisition.ExtraBinDirs))
	for _, dir := range trimNonEmpty(c.Acquisition.ExtraBinDirs) {
		expanded, err := ExpandPath(dir)
		if err != nil {
			return fmt.Errorf("acquisition.extra_bin_dirs: %w", err)
		}
		dirs = append(dirs, expanded)
	}
	c.Acquisition.ExtraBinDirs = dirs
	return nil
}

func (c *Config) normalizePackages() {
	c.Packages.IndexURL = strings.TrimSpace(c.Packages.IndexURL)
	if c.Packages.IndexURL == "" {
		c.Packages.IndexURL = defaultIndexURL
	}
	c.Packages.Names = trimNonEmpty(c.Packages.Names)
	if len(c.Packages.Names) == 0 {
		c.Packages.Names = append([]string(nil), defaultPackages...)
	}
}

func (c *Config) normalizeWorkspace() error {
	root := strings.TrimSpace(c.Workspace.Root)
	if root == "" {
		root = "."
	}
	expanded, err := ExpandPath(root)
	if err != nil {
		return fmt.Errorf("workspace.root: %w", err)
	}
	c.Workspace.Root = expanded

	c.Workspace.Directories = trimNonEmpty(c.Workspace.Directories)
	if len(c.Workspace.Directories) == 0 {
		c.Workspace.Directories = append([]string(nil), defaultDirectories...)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}
