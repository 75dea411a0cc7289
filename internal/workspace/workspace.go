// Package workspace creates and inspects the fixed directory set the
// classifier scripts expect next to their working directory.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Ensure creates every named directory under root that does not already
// exist and returns the paths it created. Existing directories are left
// untouched; creation is idempotent and order-independent.
func Ensure(root string, names []string) ([]string, error) {
	var created []string
	for _, name := range names {
		path := filepath.Join(root, name)
		info, err := os.Stat(path)
		switch {
		case err == nil:
			if !info.IsDir() {
				return created, fmt.Errorf("workspace path %q exists and is not a directory", path)
			}
			continue
		case errors.Is(err, fs.ErrNotExist):
			if err := os.MkdirAll(path, 0o755); err != nil {
				return created, fmt.Errorf("create directory %q: %w", path, err)
			}
			created = append(created, path)
		default:
			return created, fmt.Errorf("stat %q: %w", path, err)
		}
	}
	return created, nil
}
