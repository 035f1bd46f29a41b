// Package match defines the canonical line match produced by every search
// strategy, and the parser that turns `path:line:content` tool output into it.
//
// git grep and system grep both print one hit per line in the form
// "path:lineNumber:content". Content may itself contain colons, so only the
// first two colons are structural. Paths are re-expressed relative to the
// search root so results look the same whichever strategy produced them.
package match

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jpl-au/seek/internal/path"
)

// Record is a single matching line. Records are created by a strategy and
// never modified afterwards.
type Record struct {
	Path string `json:"path"` // relative to the search root, forward slashes
	Line int    `json:"line"` // 1-indexed
	Text string `json:"text"` // raw line content
}

// Parse converts line-oriented `path:line:content` output into records.
// Blank lines and lines without two colons or a valid line number are
// discarded. Paths are resolved against root and made relative to it.
func Parse(raw, root string) []Record {
	var out []Record
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		r, ok := parseLine(line, root)
		if ok {
			out = append(out, r)
		}
	}
	return out
}

// parseLine splits a single output line at its first two colons.
func parseLine(line, root string) (Record, bool) {
	first := strings.IndexByte(line, ':')
	if first < 0 {
		return Record{}, false
	}
	second := strings.IndexByte(line[first+1:], ':')
	if second < 0 {
		return Record{}, false
	}
	second += first + 1

	n, err := strconv.Atoi(line[first+1 : second])
	if err != nil || n < 1 {
		return Record{}, false
	}

	return Record{
		Path: path.Relative(root, line[:first]),
		Line: n,
		Text: line[second+1:],
	}, true
}

// File holds all matches for one file, in ascending line order.
type File struct {
	Path    string
	Matches []Record
}

// Group collects records by file path. Files keep the order in which they
// were first seen; matches within a file are sorted by line number.
func Group(records []Record) []File {
	idx := make(map[string]int)
	var files []File
	for _, r := range records {
		i, ok := idx[r.Path]
		if !ok {
			i = len(files)
			idx[r.Path] = i
			files = append(files, File{Path: r.Path})
		}
		files[i].Matches = append(files[i].Matches, r)
	}
	for i := range files {
		m := files[i].Matches
		sort.SliceStable(m, func(a, b int) bool { return m[a].Line < m[b].Line })
	}
	return files
}

// Prefix returns a copy of records with dir prepended to every path. Used when
// several workspace roots are searched so results stay distinguishable.
func Prefix(records []Record, dir string) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		r.Path = dir + "/" + r.Path
		out[i] = r
	}
	return out
}

// Files returns the number of distinct files in records.
func Files(records []Record) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.Path] = struct{}{}
	}
	return len(seen)
}
