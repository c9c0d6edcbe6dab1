// Package uploads persists user-submitted images on the local filesystem,
// keyed by a sanitized filename.
//
// Collision behavior: saving under an existing sanitized name silently
// overwrites the previous file (last write wins, no renaming). Callers that
// need deduplication must provide unique names themselves.
package uploads

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Store writes uploaded files under a base directory.
type Store struct {
	dir string
}

// NewStore creates the uploads directory if needed and returns a Store
// rooted at it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the base directory the store writes into.
func (s *Store) Dir() string { return s.dir }

// Save writes data under the given sanitized filename and returns the full
// filesystem path. The name must already have passed SanitizeFilename; Save
// rejects empty names and names that would escape the base directory.
func (s *Store) Save(sanitizedName string, data []byte) (string, error) {
	if sanitizedName == "" {
		return "", fmt.Errorf("empty filename")
	}
	path := filepath.Join(s.dir, sanitizedName)

	// Belt and braces: a sanitized name never contains separators, but a
	// bad caller must not be able to write outside the uploads dir.
	if filepath.Dir(path) != filepath.Clean(s.dir) {
		return "", fmt.Errorf("filename escapes uploads directory: %q", sanitizedName)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}

// unsafeChars matches everything outside the conservative allowed set for
// on-disk names.
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces an uploaded file's client-supplied name to a
// filesystem-safe form: the path is stripped to its base name, whitespace
// and path separators become underscores, characters outside [A-Za-z0-9_.-]
// are removed, and leading/trailing dots, dashes, and underscores are
// trimmed. The result may be empty for fully hostile input; callers should
// treat an empty result as "no file".
func SanitizeFilename(name string) string {
	// Client names may use either separator regardless of server OS.
	name = strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._-")
	return name
}
