// Package logging constructs the slog loggers used across bpmsetup.
//
// Two output formats are supported: "console" renders compact
// single-line records for interactive runs, and "json" emits structured records for
// capture by other tooling. Helpers such as Error and String keep call
// sites terse, and NewNop supplies a discard logger for tests.
package logging
