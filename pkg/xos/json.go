package xos

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteJSON writes v as indented JSON, atomically.
func WriteJSON(filename string, v any, perm os.FileMode) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return WriteFile(filename, append(data, '\n'), perm)
}
