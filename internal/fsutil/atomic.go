// Package fsutil provides all-or-nothing file writes
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteFileAtomic copies r into path. The data lands in a temp file next to the
// target and is renamed into place only after a successful sync, so readers see
// either the previous file or the complete new one.
func WriteFileAtomic(path string, r io.Reader, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmpPath := filepath.Join(dir, ".tmp-"+uuid.NewString())
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	// Remove the temp file on every failure path
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	committed = true
	return nil
}
