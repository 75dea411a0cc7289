package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteExecutable drops a shell stub with the given body at path.
func WriteExecutable(t testing.TB, path, body string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// StubBinary creates an always-succeeding stub named name under dir and
// returns its path.
func StubBinary(t testing.TB, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	WriteExecutable(t, path, "exit 0\n")
	return path
}
