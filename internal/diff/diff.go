// Package diff compares the match lists produced by different search
// strategies. Each list is normalised to one "path:line:text" row per match
// in a stable order, then diffed line by line.
package diff

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jpl-au/seek/internal/match"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Result holds diff output.
type Result struct {
	Old     string // old label
	New     string // new label
	Diff    string // plain diff text
	Added   int    // rows only in new
	Removed int    // rows only in old
}

// Equal reports whether both sides held the same rows.
func (r Result) Equal() bool {
	return r.Added == 0 && r.Removed == 0
}

// Normalise renders records as sorted "path:line:text" rows, one per line.
func Normalise(records []match.Record) string {
	rows := make([]string, len(records))
	for i, r := range records {
		rows[i] = r.Path + ":" + strconv.Itoa(r.Line) + ":" + r.Text
	}
	sort.Strings(rows)
	if len(rows) == 0 {
		return ""
	}
	return strings.Join(rows, "\n") + "\n"
}

// Matches diffs two strategies' match lists.
func Matches(oldRecords, newRecords []match.Record, oldLabel, newLabel string) Result {
	return Compute(Normalise(oldRecords), Normalise(newRecords), oldLabel, newLabel)
}

// Compute returns a line-level diff between old and new content.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	d := dmp.DiffMain(a, b, false)
	d = dmp.DiffCharsToLines(d, lines)

	r := Result{Old: oldLabel, New: newLabel}
	r.Diff, r.Added, r.Removed = format(d)
	return r
}

// format converts diffs to unified-style text and counts changed rows.
func format(diffs []diffmatchpatch.Diff) (string, int, int) {
	var b strings.Builder
	var added, removed int
	for _, d := range diffs {
		// Trim trailing newline to avoid artefact empty string from Split
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			removed += len(lines)
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			added += len(lines)
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				for i := range contextLines {
					b.WriteString("  " + lines[i] + "\n")
				}
				b.WriteString("  ...\n")
				for i := len(lines) - contextLines; i < len(lines); i++ {
					b.WriteString("  " + lines[i] + "\n")
				}
			} else {
				for _, l := range lines {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String(), added, removed
}

// Colourise adds ANSI colours to diff output.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header. An identical pair is reported
// on one line instead.
func (r Result) Format(colour bool) string {
	if r.Equal() {
		return fmt.Sprintf("=== %s and %s agree ===\n", r.Old, r.New)
	}
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}
