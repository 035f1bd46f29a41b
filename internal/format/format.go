// Package format renders search results and telemetry for display.
//
// Centralises presentation so the engine and command implementations only
// deal in match records and session records.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/seek/internal/match"
)

// humanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func humanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// Scope describes where a search ran: the caller's path, or every root.
func Scope(path string) string {
	if path == "" {
		return "the workspace directories"
	}
	return fmt.Sprintf("path %q", path)
}

// filter returns the " (filter: "x")" clause, or nothing.
func filter(include string) string {
	if include == "" {
		return ""
	}
	return fmt.Sprintf(" (filter: %q)", include)
}

// Summary renders grouped matches as the caller-facing search result.
//
//	Found 2 match(es) for pattern "TODO" in path "src":
//	---
//	File: a.go
//	L3: // TODO fix
//	---
func Summary(pattern, path, include string, files []match.File) string {
	total := 0
	for _, f := range files {
		total += len(f.Matches)
	}
	if total == 0 {
		return NoMatches(pattern, path, include)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d match(es) for pattern %q in %s%s:\n---\n",
		total, pattern, Scope(path), filter(include))
	for _, f := range files {
		fmt.Fprintf(&b, "File: %s\n", f.Path)
		for _, m := range f.Matches {
			fmt.Fprintf(&b, "L%d: %s\n", m.Line, strings.TrimSpace(m.Text))
		}
		b.WriteString("---\n")
	}
	return b.String()
}

// Display is the one-line status shown alongside a summary.
func Display(total int) string {
	if total == 0 {
		return "No matches found"
	}
	return fmt.Sprintf("Found %d match(es)", total)
}

// NoMatches renders the empty-result summary.
func NoMatches(pattern, path, include string) string {
	return fmt.Sprintf("No matches found for pattern %q in %s%s.", pattern, Scope(path), filter(include))
}

// Failure renders a search that could not complete.
func Failure(err error) (summary, display string) {
	return "Error during search operation: " + err.Error(), "Error: " + err.Error()
}

// Lines prints matches grep-style, one "path:line:text" row each.
func Lines(w io.Writer, files []match.File) error {
	for _, f := range files {
		for _, m := range f.Matches {
			if _, err := fmt.Fprintf(w, "%s:%d:%s\n", f.Path, m.Line, m.Text); err != nil {
				return err
			}
		}
	}
	return nil
}
