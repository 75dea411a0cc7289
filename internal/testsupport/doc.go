// Package testsupport provides shared helpers for package tests: stub
// executables, canned configurations, and a scripted Runner that records
// every invocation.
package testsupport
