package runner

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Env carries search-path additions for resolving and running external
// binaries. The zero value resolves against the ambient process PATH.
// Env values are immutable; Prepend returns a copy.
type Env struct {
	prepends []string
}

// Prepend returns a new Env whose search path starts with dir.
func (e Env) Prepend(dir string) Env {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return e
	}
	prepends := make([]string, 0, len(e.prepends)+1)
	prepends = append(prepends, dir)
	prepends = append(prepends, e.prepends...)
	return Env{prepends: prepends}
}

// Prepends returns the directories searched before the ambient PATH.
func (e Env) Prepends() []string {
	return append([]string(nil), e.prepends...)
}

// LookPath resolves name to an executable path, checking the prepended
// directories before falling back to the ambient PATH.
func (e Env) LookPath(name string) (string, error) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, os.PathSeparator) {
		return exec.LookPath(name)
	}
	for _, dir := range e.prepends {
		for _, candidate := range executableCandidates(filepath.Join(dir, name)) {
			info, err := os.Stat(candidate)
			if err != nil || info.IsDir() {
				continue
			}
			if runtime.GOOS != "windows" && info.Mode()&0o111 == 0 {
				continue
			}
			return candidate, nil
		}
	}
	return exec.LookPath(name)
}

// Environ materializes the environment for an exec call, with the
// prepended directories placed ahead of the inherited PATH.
func (e Env) Environ() []string {
	environ := os.Environ()
	if len(e.prepends) == 0 {
		return environ
	}
	prefix := strings.Join(e.prepends, string(os.PathListSeparator))
	for i, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.EqualFold(key, "PATH") {
			continue
		}
		if value != "" {
			value = prefix + string(os.PathListSeparator) + value
		} else {
			value = prefix
		}
		environ[i] = key + "=" + value
		return environ
	}
	return append(environ, "PATH="+prefix)
}

func executableCandidates(path string) []string {
	if runtime.GOOS == "windows" && filepath.Ext(path) == "" {
		return []string{path + ".exe", path + ".bat", path}
	}
	return []string{path}
}
