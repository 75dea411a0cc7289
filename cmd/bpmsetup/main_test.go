package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bpmsetup/internal/testsupport"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestFailureMessage(t *testing.T) {
	if _, ok := failureMessage(context.Canceled); ok {
		t.Fatal("cancellation must print nothing")
	}
	msg, ok := failureMessage(errors.New("lock held"))
	if !ok || msg != "bpmsetup: lock held" {
		t.Fatalf("unexpected failure message %q (ok=%v)", msg, ok)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	cmd := newRootCommand()
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"status", "config"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing subcommand %q in %v", want, names)
		}
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "sub", "config.toml")

	out, err := executeCommand(t, "config", "init", "-p", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected target path in output, got %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	// A second init without --overwrite must refuse.
	if _, err := executeCommand(t, "config", "init", "-p", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, err := executeCommand(t, "config", "init", "-p", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite init: %v", err)
	}
}

func TestConfigShowPrintsEffectiveConfig(t *testing.T) {
	path := writeTestConfig(t, `
[packages]
index_url = "https://mirrors.example.com/pypi/simple"
`)

	out, err := executeCommand(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "mirrors.example.com") {
		t.Fatalf("expected overridden mirror in output, got %q", out)
	}
	if !strings.Contains(out, "yt-dlp") {
		t.Fatalf("expected default package list in output, got %q", out)
	}
}

func TestStatusRendersEveryCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	binDir := t.TempDir()
	testsupport.StubBinary(t, binDir, "python3")
	t.Setenv("PATH", binDir)

	root := t.TempDir()
	path := writeTestConfig(t, `
[packages]
index_url = "`+srv.URL+`"

[workspace]
root = "`+root+`"
`)

	out, err := executeCommand(t, "--config", path, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"Python runtime", "pip", "Index mirror", "BLUE", "GREEN", "RED"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in status output, got:\n%s", want, out)
		}
	}
	// Workspace dirs do not exist yet, so status must suggest provisioning.
	if !strings.Contains(out, "run bpmsetup") {
		t.Fatalf("expected provisioning hint, got:\n%s", out)
	}
}

func TestStatusRejectsBadConfig(t *testing.T) {
	path := writeTestConfig(t, `
[packages]
index_url = "not a url"
`)
	if _, err := executeCommand(t, "--config", path, "status"); err == nil {
		t.Fatal("expected error for invalid config")
	}
}
