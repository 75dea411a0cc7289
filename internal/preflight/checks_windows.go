//go:build windows

package preflight

import "os"

// accessCheck verifies the directory is writable by creating and
// removing a probe file. ACLs make a faithful access(2) emulation
// impractical on Windows.
func accessCheck(path string) error {
	file, err := os.CreateTemp(path, ".bpmsetup-*")
	if err != nil {
		return err
	}
	name := file.Name()
	if err := file.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}
