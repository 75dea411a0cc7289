// Command bpmsetup provisions the environment for the colored-radio BPM
// classifier tools: it detects or installs Python, installs the pip
// dependencies from a mirror, and creates the workspace directories.
//
// Running bpmsetup with no arguments performs the full provisioning
// sequence. "bpmsetup status" inspects the environment without changing
// it, and "bpmsetup config init/show" manage the optional TOML config.
package main
