// Package message keeps the single global message shown to every visitor
package message

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"adboard/internal/fsutil"
)

// Store is a file-backed text value. A missing file reads as empty text.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Path returns the backing file location
func (s *Store) Path() string {
	return s.path
}

// Read returns the stored message, or "" when none exists
func (s *Store) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read global message: %w", err)
	}
	return string(data), nil
}

// Delete removes the message. It reports false when there was nothing to delete.
func (s *Store) Delete() (bool, error) {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete global message: %w", err)
	}
	return true, nil
}

// EnsureSeeded writes sample when no message exists yet. It reports whether it wrote.
func (s *Store) EnsureSeeded(sample string) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to check global message: %w", err)
	}

	if err := fsutil.WriteFileAtomic(s.path, strings.NewReader(sample), 0644); err != nil {
		return false, fmt.Errorf("failed to seed global message: %w", err)
	}
	return true, nil
}
