// Package config loads, normalizes, and validates bpmsetup configuration.
//
// Every value has a compiled-in default, so the provisioner runs with no
// config file at all; an optional TOML file at ~/.config/bpmsetup/config.toml
// overrides individual knobs such as the pip index mirror or the package
// list. Paths are expanded (including tilde shortcuts) before use.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
