// Package pip installs the classifier's Python dependencies against a
// configured index mirror.
//
// Installation is best effort and non-transactional: every package is
// attempted regardless of earlier failures, and the per-package outcomes
// are collected into a Report instead of halting the run. "Installed"
// means the pip invocation exited zero; no import verification happens.
package pip
