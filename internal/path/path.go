// Package path provides filesystem path helpers shared by the search
// strategies and the workspace policy.
//
// Search results always carry forward-slash paths relative to the directory
// that was searched, regardless of which strategy produced them or which
// platform seek runs on.
package path

import (
	"path/filepath"
	"strings"
)

// Relative resolves p against root and returns it relative to root using
// forward slashes. When the relative form would be empty (p is root itself)
// the base name is returned instead so a result never has a blank path.
func Relative(root, p string) string {
	abs := p
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, abs)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "" || rel == "." {
		return filepath.Base(abs)
	}
	return filepath.ToSlash(rel)
}

// Abs resolves p against base when it is relative and cleans the result.
func Abs(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// Within reports whether p is root or lies beneath it. Both paths should be
// absolute and clean.
//
// A plain prefix test is not enough: "/work/app" must not contain
// "/work/application".
func Within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
