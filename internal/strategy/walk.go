package strategy

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/jpl-au/seek/internal/glob"
	"github.com/jpl-au/seek/internal/match"
)

// ignoreDirs are skipped by the in-process walk.
var ignoreDirs = map[string]bool{
	".git":             true,
	"node_modules":     true,
	"bower_components": true,
	".svn":             true,
	".hg":              true,
}

// Ignored reports whether a directory with this name is skipped by the walk.
func Ignored(name string) bool {
	return ignoreDirs[name]
}

// DefaultMaxLineLength bounds a single scanned line (10MB).
const DefaultMaxLineLength = 10 * 1024 * 1024

// binarySniffLen is how much of a file is inspected for NUL bytes.
const binarySniffLen = 8000

// Walk searches by walking the directory tree and matching every line with
// Go's regexp engine. It needs no external tools and is always available.
//
// Matching is case-insensitive. The walk checks ctx before every entry so a
// cancelled search stops within one file.
type Walk struct {
	Logger *slog.Logger

	// MaxLineLength is the longest line scanned (0 = DefaultMaxLineLength).
	// Longer lines end the scan of that file; earlier matches are kept.
	MaxLineLength int

	visit func(rel string) // called before each file is scanned; tests only
}

// Name returns "walk".
func (w *Walk) Name() string { return NameWalk }

// Attempt walks q.Dir. Per-file read errors are logged and skipped. An error
// reading q.Dir itself, or cancellation of ctx, ends the walk and is
// returned together with whatever was found so far.
func (w *Walk) Attempt(ctx context.Context, q Query) (Outcome, error) {
	out := Outcome{Strategy: NameWalk}

	re, err := regexp.Compile("(?i)" + q.Pattern)
	if err != nil {
		return out, fmt.Errorf("invalid regex: %w", err)
	}
	if !glob.Valid(q.Include) {
		return out, fmt.Errorf("invalid include pattern %q", q.Include)
	}
	logger := loggerOrDefault(w.Logger)

	err = filepath.WalkDir(q.Dir, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if p == q.Dir {
				return err
			}
			logger.Debug("walk: skipping unreadable entry", "path", p, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != q.Dir && Ignored(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(q.Dir, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if ok, _ := glob.Match(q.Include, rel); !ok {
			return nil
		}

		out.FilesScanned++
		if w.visit != nil {
			w.visit(rel)
		}

		matches, err := w.scanFile(p, rel, re)
		if err != nil {
			logger.Debug("walk: read failed", "path", p, "error", err)
		}
		out.Matches = append(out.Matches, matches...)
		return nil
	})
	if err != nil {
		return out, err
	}
	return out, nil
}

// scanFile returns the lines of the file at p matching re. Binary files are
// skipped. Uses bufio.Scanner so large files are never held in memory whole.
func (w *Walk) scanFile(p, rel string, re *regexp.Regexp) ([]match.Record, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, binarySniffLen)
	head, err := br.Peek(binarySniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return nil, nil
	}

	maxLine := w.MaxLineLength
	if maxLine <= 0 {
		maxLine = DefaultMaxLineLength
	}
	initial := min(64*1024, maxLine)
	scanner := bufio.NewScanner(br)
	scanner.Buffer(make([]byte, initial), maxLine)

	var matches []match.Record
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if re.MatchString(line) {
			matches = append(matches, match.Record{Path: rel, Line: lineNum, Text: line})
		}
	}
	return matches, scanner.Err()
}
