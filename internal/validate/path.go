package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/jpl-au/seek/internal/path"
)

// Container decides whether a path may be searched.
type Container interface {
	Contains(p string) bool
}

// Dir resolves p against base and checks it is an existing directory that
// policy allows. Returns the absolute, cleaned path.
//
// Validation rules:
//   - Null bytes rejected
//   - Must lie inside the workspace (checked before the filesystem is touched)
//   - Must exist and be a directory
func Dir(policy Container, base, p string) (string, error) {
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: null byte in path", ErrNotFound)
	}
	abs := path.Abs(base, p)
	if !policy.Contains(abs) {
		return "", fmt.Errorf("%w: %s", ErrOutsideWorkspace, p)
	}

	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrNotFound, p, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, p)
	}
	return abs, nil
}
