// Package vcs detects whether a directory belongs to a git working tree.
//
// Detection follows git's own discovery: starting at the directory, walk up
// until a .git entry is found or the filesystem root is reached. A .git file
// (worktrees, submodules) counts as well as a .git directory. No git
// process is spawned, so detection works even when git is not installed.
package vcs

import (
	"os"
	"path/filepath"
)

// Marker is the entry that identifies a repository root.
const Marker = ".git"

// Root returns the repository root containing dir, or "" if dir is not
// inside a repository.
func Root(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(abs, Marker)); err == nil {
			return abs
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return ""
		}
		abs = parent
	}
}

// IsRepository reports whether dir is inside a git working tree.
func IsRepository(dir string) bool {
	return Root(dir) != ""
}
