// Package acquire installs the Python runtime when it is absent.
//
// Two sources are tried in order: the OS package manager (primary) and a
// direct download of the official installer run unattended (fallback).
// A failed primary attempt is not fatal; only both sources failing is.
// After a successful install the package probes conventional install
// locations so the current process can see the new interpreter; when
// that fails the operator must restart the session, which is a distinct,
// non-error outcome.
package acquire
