// Package preflight provides read-only readiness checks for the
// provisioner's external collaborators: the Python runtime, pip, the
// package index mirror, and the workspace directories.
//
// The CLI "bpmsetup status" command renders these results; nothing here
// installs or creates anything.
package preflight
