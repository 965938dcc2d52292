//go:build !windows
// +build !windows

// Package xos provides atomic file writes. A crash mid-write leaves either
// the old file or the new one, never a truncated mix.
package xos

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// WriteFile writes data to the named file atomically using rename, creating
// parent directories as needed.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}
	return renameio.WriteFile(filename, data, perm)
}
