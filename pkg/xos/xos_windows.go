//go:build windows
// +build windows

// Package xos provides atomic file writes.
// On Windows, the temp file lives next to the target since rename across
// drives is not possible.
package xos

import (
	"os"
	"path/filepath"
)

// WriteFile writes data to the named file through a temp file in the same
// directory, creating parent directories as needed.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tempName := tempFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return err
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tempName, perm); err != nil {
		return err
	}

	// rename does not replace an existing file here
	if _, err := os.Stat(filename); err == nil {
		if err := os.Remove(filename); err != nil {
			return err
		}
	}

	if err := os.Rename(tempName, filename); err != nil {
		return err
	}

	success = true
	return nil
}
