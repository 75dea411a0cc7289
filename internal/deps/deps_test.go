package deps

import (
	"os"
	"path/filepath"
	"testing"

	"bpmsetup/internal/runner"
)

func writeStub(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	writeStub(t, binDir, "present")
	t.Setenv("PATH", binDir)

	reqs := []Requirement{
		{Name: "Present", Commands: []string{"present"}},
		{Name: "Missing", Commands: []string{"clearly-not-present-binary"}},
		{Name: "Unconfigured"},
	}

	results := CheckBinaries(runner.Env{}, reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}

	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected status for unconfigured requirement: %#v", results[2])
	}
}

func TestCheckBinariesTriesAlternatesInOrder(t *testing.T) {
	binDir := t.TempDir()
	writeStub(t, binDir, "python")
	t.Setenv("PATH", binDir)

	results := CheckBinaries(runner.Env{}, []Requirement{
		{Name: "Python", Commands: []string{"python3", "python"}},
	})
	if !results[0].Available {
		t.Fatalf("expected alternate name to resolve: %#v", results[0])
	}
	if results[0].Command != "python" {
		t.Fatalf("expected resolved command %q, got %q", "python", results[0].Command)
	}
}

func TestResolvePythonHonorsEnvPrepends(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	binDir := t.TempDir()
	writeStub(t, binDir, "python3")

	if _, ok := ResolvePython(runner.Env{}, []string{"python3", "python"}); ok {
		t.Fatal("expected no interpreter on bare PATH")
	}

	env := runner.Env{}.Prepend(binDir)
	name, ok := ResolvePython(env, []string{"python3", "python"})
	if !ok {
		t.Fatal("expected interpreter via prepended dir")
	}
	if name != "python3" {
		t.Fatalf("expected python3, got %q", name)
	}
}
