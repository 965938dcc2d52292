// Package workspace locates the deploy workspace and validates names used in it.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no marker file exists in the directory or
// any of its parents.
var ErrNotFound = errors.New("workspace not found")

// FindRoot walks up from start looking for a directory containing marker.
// It returns the directory, not the marker path.
func FindRoot(start, marker string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w: %s not found in %s or any parent directory", ErrNotFound, marker, start)
}
