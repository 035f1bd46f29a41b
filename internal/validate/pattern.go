package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jpl-au/seek/internal/glob"
)

// Pattern checks that p is a non-empty regular expression and returns the
// compiled form.
//
// Validation rules:
//   - Empty patterns rejected (would match every line of every file)
//   - Null bytes rejected (cannot be passed to git or grep as an argument)
//   - Must compile with regexp; the walk strategy uses the same syntax
func Pattern(p string) (*regexp.Regexp, error) {
	if p == "" {
		return nil, ErrEmptyPattern
	}
	if strings.ContainsRune(p, 0) {
		return nil, fmt.Errorf("%w: null byte in pattern", ErrInvalidPattern)
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return re, nil
}

// Include checks an include glob. An empty include is valid and means no
// filter.
func Include(include string) error {
	if include == "" {
		return nil
	}
	if strings.ContainsRune(include, 0) {
		return fmt.Errorf("%w: null byte in pattern", ErrInvalidInclude)
	}
	if !glob.Valid(include) {
		return fmt.Errorf("%w: %q", ErrInvalidInclude, include)
	}
	return nil
}
