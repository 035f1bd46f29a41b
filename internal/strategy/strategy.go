// Package strategy implements the search backends and the fallback chain that
// selects between them.
//
// Three strategies exist, in order of preference:
//
//  1. git  - git grep, when the directory is inside a working tree
//  2. grep - the system grep, when it is on PATH
//  3. walk - an in-process directory walk that applies the regex itself
//
// Each strategy either produces an Outcome, reports that it is unavailable
// (ErrUnavailable), or fails. The Chain tries them in order and returns the
// first success. Unavailability and failure only disqualify a strategy for
// the current search; they are never surfaced on their own. The walk cannot
// be unavailable, so the chain only fails when the walk itself hits a
// structural error or the search is cancelled.
package strategy

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jpl-au/seek/internal/match"
	"github.com/jpl-au/seek/internal/proc"
	"github.com/jpl-au/seek/internal/vcs"
)

// Strategy names, used in config (search.disable), telemetry and output.
const (
	NameGit  = "git"
	NameGrep = "grep"
	NameWalk = "walk"
)

// Names returns every strategy name in fallback order.
func Names() []string {
	return []string{NameGit, NameGrep, NameWalk}
}

var (
	// ErrUnavailable means the strategy cannot run for this query (tool
	// missing, not a repository). The chain moves on silently.
	ErrUnavailable = errors.New("strategy unavailable")

	// ErrFailed means the strategy ran but its tool reported an error.
	ErrFailed = errors.New("strategy failed")

	// ErrNoStrategy is returned by an empty chain.
	ErrNoStrategy = errors.New("no search strategy configured")
)

// Query is the input shared by every strategy.
type Query struct {
	Pattern string // regular expression, already validated
	Dir     string // absolute directory to search
	Include string // optional glob filter, empty for all files
}

// Outcome is what a strategy produced for one directory.
type Outcome struct {
	Strategy     string
	Raw          string // tool output before normalisation (empty for walk)
	Matches      []match.Record
	FilesScanned int    // -1 when the strategy cannot know
	Reason       string // decision trail, filled in by Chain
}

// Strategy is one search backend.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, q Query) (Outcome, error)
}

// Probe answers the environment questions strategies ask before running.
type Probe interface {
	Available(name string) bool
	IsRepository(dir string) bool
}

// SystemProbe checks the real PATH and filesystem.
type SystemProbe struct{}

// Available reports whether an executable is on PATH.
func (SystemProbe) Available(name string) bool { return proc.Available(name) }

// IsRepository reports whether dir is inside a git working tree.
func (SystemProbe) IsRepository(dir string) bool { return vcs.IsRepository(dir) }

func probeOrDefault(p Probe) Probe {
	if p == nil {
		return SystemProbe{}
	}
	return p
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
