package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRuntime(); err != nil {
		return err
	}
	if err := c.validateAcquisition(); err != nil {
		return err
	}
	if err := c.validatePackages(); err != nil {
		return err
	}
	if err := c.validateWorkspace(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRuntime() error {
	if len(c.Runtime.Binaries) == 0 {
		return errors.New("runtime.binaries must name at least one interpreter")
	}
	return nil
}

func (c *Config) validateAcquisition() error {
	if len(c.Acquisition.PrimaryCommand) == 0 {
		return errors.New("acquisition.primary_command must not be empty")
	}
	if c.Acquisition.FallbackURL != "" {
		if err := validateHTTPURL(c.Acquisition.FallbackURL); err != nil {
			return fmt.Errorf("acquisition.fallback_url: %w", err)
		}
	}
	if c.Acquisition.DownloadTimeoutSeconds < 0 {
		return errors.New("acquisition.download_timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validatePackages() error {
	if len(c.Packages.Names) == 0 {
		return errors.New("packages.names must list at least one package")
	}
	if err := validateHTTPURL(c.Packages.IndexURL); err != nil {
		return fmt.Errorf("packages.index_url: %w", err)
	}
	return nil
}

func (c *Config) validateWorkspace() error {
	if len(c.Workspace.Directories) == 0 {
		return errors.New("workspace.directories must list at least one directory")
	}
	for _, name := range c.Workspace.Directories {
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("workspace.directories: %q must be a bare directory name", name)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func validateHTTPURL(value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%q must use http or https", value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%q is missing a host", value)
	}
	return nil
}
