// Package media stores files attached to ads in the upload directory
package media

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"adboard/internal/domain"
	"adboard/internal/fsutil"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// AllowedExtensions lists the accepted upload extensions, lower-case without the dot
var AllowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"mp4":  true,
	"mov":  true,
}

// Store keeps uploaded media in a single directory keyed by sanitized filename
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir, creating the directory if needed
func NewStore(dir string) (*Store, error) {
	cleanDir := filepath.Clean(dir)
	if err := os.MkdirAll(cleanDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{dir: cleanDir}, nil
}

// Dir returns the upload directory
func (s *Store) Dir() string {
	return s.dir
}

// IsAllowed reports whether filename has an extension from the allow-list
func IsAllowed(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	return AllowedExtensions[strings.ToLower(filename[i+1:])]
}

// SanitizeFilename turns a client supplied name into a safe plain filename.
// Path separators become spaces, non-ASCII letters are decomposed and dropped,
// anything outside [A-Za-z0-9_.-] is removed, whitespace runs become "_" and
// leading or trailing dots and underscores are trimmed. The result may be empty.
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)

	var b strings.Builder
	for _, r := range name {
		if r > unicode.MaxASCII {
			continue
		}
		b.WriteRune(r)
	}

	fields := strings.Fields(b.String())
	joined := strings.Join(fields, "_")

	b.Reset()
	for _, r := range joined {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}

// Save validates an upload and writes it to the upload directory, returning
// the stored filename. A file with the same sanitized name is replaced.
func (s *Store) Save(upload io.Reader, originalName string) (string, error) {
	if upload == nil {
		return "", domain.NewValidationError("file", domain.MsgNoFileSelected)
	}
	if originalName == "" {
		return "", domain.NewValidationError("file", domain.MsgNoFileSelected)
	}
	if !IsAllowed(originalName) {
		return "", domain.NewValidationError("file", domain.MsgFileNotAllowed)
	}

	name := SanitizeFilename(originalName)
	// Names made only of non-ASCII letters lose their stem, e.g. "عکس.png" -> "png"
	if name == "" || !IsAllowed(name) {
		name = fallbackName(originalName)
	}

	if err := fsutil.WriteFileAtomic(filepath.Join(s.dir, name), upload, 0644); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return name, nil
}

// fallbackName builds a random name keeping the original (allowed) extension
func fallbackName(originalName string) string {
	ext := strings.ToLower(originalName[strings.LastIndex(originalName, ".")+1:])
	return uuid.NewString() + "." + ext
}

// Open returns the stored file. Names that are not plain local filenames or
// that do not exist yield domain.ErrNotFound.
func (s *Store) Open(name string) (*os.File, error) {
	if name == "" || name != filepath.Base(name) || !filepath.IsLocal(name) || strings.HasPrefix(name, ".") {
		return nil, domain.ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open media: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat media: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, domain.ErrNotFound
	}
	return f, nil
}
