package search

import (
	"path/filepath"
	"strings"
)

// labels returns the prefix given to each directory's match paths when
// several directories are searched together. A label is the directory's
// base name, lengthened with parent directories until no other directory
// shares it, so /a/src and /b/src become a/src and b/src.
func labels(dirs []string) []string {
	parts := make([][]string, len(dirs))
	depth := make([]int, len(dirs))
	for i, d := range dirs {
		clean := strings.Trim(filepath.ToSlash(filepath.Clean(d)), "/")
		parts[i] = strings.Split(clean, "/")
		depth[i] = 1
	}
	label := func(i int) string {
		p := parts[i]
		return strings.Join(p[len(p)-min(depth[i], len(p)):], "/")
	}

	for {
		byLabel := make(map[string][]int, len(dirs))
		for i := range dirs {
			l := label(i)
			byLabel[l] = append(byLabel[l], i)
		}
		grew := false
		for _, idx := range byLabel {
			if len(idx) < 2 {
				continue
			}
			for _, i := range idx {
				if depth[i] < len(parts[i]) {
					depth[i]++
					grew = true
				}
			}
		}
		if !grew {
			break
		}
	}

	out := make([]string, len(dirs))
	for i := range dirs {
		out[i] = label(i)
	}
	return out
}

func dirsOf(roots []rootOutcome) []string {
	dirs := make([]string, len(roots))
	for i, r := range roots {
		dirs[i] = r.dir
	}
	return dirs
}
