// Package workspace defines which directories a search may touch.
//
// The engine consults a Policy before running any strategy: an explicit
// search path must lie inside one of the allowed roots, and a search with no
// path covers every root.
package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/jpl-au/seek/internal/path"
)

// ErrNoRoots is returned by New when no roots are given.
var ErrNoRoots = errors.New("workspace: no roots configured")

// Policy answers containment questions for the search engine.
type Policy interface {
	// Contains reports whether the absolute path p may be searched.
	Contains(p string) bool
	// Roots returns the allowed directories in configured order.
	Roots() []string
}

// Dirs is a Policy over a fixed list of directories.
type Dirs struct {
	roots    []string // cleaned absolute paths, as configured
	resolved []string // symlink-resolved forms, parallel to roots
}

// New returns a policy over roots. Each root is made absolute (relative to
// the working directory) and cleaned. Duplicates are dropped while keeping
// first-seen order.
func New(roots ...string) (*Dirs, error) {
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}
	d := &Dirs{}
	for _, r := range roots {
		if r == "" {
			continue
		}
		abs, err := filepath.Abs(r)
		if err != nil {
			return nil, fmt.Errorf("workspace root %q: %w", r, err)
		}
		if slices.Contains(d.roots, abs) {
			continue
		}
		d.roots = append(d.roots, abs)
		d.resolved = append(d.resolved, resolve(abs))
	}
	if len(d.roots) == 0 {
		return nil, ErrNoRoots
	}
	return d, nil
}

// Roots returns a copy of the configured roots.
func (d *Dirs) Roots() []string {
	return slices.Clone(d.roots)
}

// Contains reports whether p lies inside any root. Symlinks are resolved on
// both sides, so a link inside a root that points elsewhere is rejected.
func (d *Dirs) Contains(p string) bool {
	if !filepath.IsAbs(p) {
		return false
	}
	p = filepath.Clean(p)
	target := resolve(p)
	for _, root := range d.resolved {
		if path.Within(root, target) {
			return true
		}
	}
	return false
}

// resolve evaluates symlinks in p. When p does not exist the nearest
// existing ancestor is resolved and the remainder re-attached.
func resolve(p string) string {
	if r, err := filepath.EvalSymlinks(p); err == nil {
		return r
	}
	parent := filepath.Dir(p)
	if parent == p {
		return p
	}
	return filepath.Join(resolve(parent), filepath.Base(p))
}
