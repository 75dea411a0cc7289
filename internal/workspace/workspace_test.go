package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureCreatesMissingDirectories(t *testing.T) {
	root := t.TempDir()
	names := []string{"BLUE", "GREEN", "RED", "表格"}

	created, err := Ensure(root, names)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if len(created) != len(names) {
		t.Fatalf("expected %d created, got %d: %v", len(names), len(created), created)
	}
	for _, name := range names {
		info, err := os.Stat(filepath.Join(root, name))
		if err != nil || !info.IsDir() {
			t.Fatalf("directory %s missing after Ensure: %v", name, err)
		}
	}
}

func TestEnsureIsIdempotent(t *testing.T) {
	root := t.TempDir()
	names := []string{"BLUE", "GREEN", "RED"}

	if _, err := Ensure(root, names); err != nil {
		t.Fatalf("first Ensure: %v", err)
	}
	created, err := Ensure(root, names)
	if err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("second run should create nothing, created %v", created)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	if len(entries) != len(names) {
		t.Fatalf("expected exactly %d entries, got %d", len(names), len(entries))
	}
}

func TestEnsurePartialSet(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "BLUE"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	created, err := Ensure(root, []string{"BLUE", "GREEN"})
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if len(created) != 1 || filepath.Base(created[0]) != "GREEN" {
		t.Fatalf("expected only GREEN created, got %v", created)
	}
}

func TestEnsureRejectsFileCollision(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "BLUE"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := Ensure(root, []string{"BLUE"}); err == nil {
		t.Fatal("expected error when a file occupies a directory name")
	}
}
