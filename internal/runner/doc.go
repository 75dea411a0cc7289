// Package runner wraps external process invocation behind a narrow
// interface so higher layers sequence commands without touching os/exec
// directly, and so tests can substitute a scripted implementation.
//
// Env is the explicit environment context threaded through invocations:
// instead of mutating the process PATH after installing a runtime, the
// acquisition step returns an extended Env and later stages resolve
// binaries through it.
package runner
