// Package provision sequences the four bootstrap stages: runtime
// presence check, acquisition fallback chain, dependency installation,
// and workspace initialization.
//
// Each stage's success is a precondition for the next; there is no
// branching back, no rollback, and no parallelism. Running the sequence
// twice yields the same end state as running it once. A flock guards
// against two concurrent runs racing the same workspace.
package provision
