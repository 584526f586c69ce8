package platform

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotDirectory is returned when a path exists (or was created) but is not
// a directory.
var ErrNotDirectory = errors.New("not a directory")

// IsDir reports whether path exists and is a directory. Symlinks are not
// followed.
func IsDir(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.IsDir()
}

// EnsureDir creates dir and any missing parents, then verifies the result is
// a directory. It reports created=true when the directory did not exist.
func EnsureDir(dir string) (created bool, err error) {
	if IsDir(dir) {
		return false, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("creating %s: %w", dir, err)
	}
	if !IsDir(dir) {
		return false, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}
	return true, nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
