// Package glob provides include-filter matching for file paths.
//
// Patterns use doublestar syntax, so ** matches any number of path segments.
// A pattern without a slash is also tried against the file's base name, which
// mirrors how grep --include and git pathspecs treat "*.md": it selects
// markdown files at any depth, not only in the search root.
package glob

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// All is the pattern used when no include filter is given.
const All = "**/*"

// Match reports whether the slash-separated relative path rel matches pattern.
// An empty pattern matches everything. Returns an error if the pattern is
// malformed.
func Match(pattern, rel string) (bool, error) {
	if pattern == "" {
		pattern = All
	}
	pattern = strings.TrimPrefix(pattern, "./")

	matched, err := doublestar.Match(pattern, rel)
	if err != nil {
		return false, err
	}
	if matched {
		return true, nil
	}

	// Try matching just the filename
	if !strings.Contains(pattern, "/") {
		return doublestar.Match(pattern, path.Base(rel))
	}
	return false, nil
}

// Valid reports whether pattern is well formed.
func Valid(pattern string) bool {
	if pattern == "" {
		return true
	}
	return doublestar.ValidatePattern(pattern)
}
