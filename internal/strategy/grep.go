package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/seek/internal/match"
	"github.com/jpl-au/seek/internal/proc"
)

// excludeDirs are never descended into by the system grep.
var excludeDirs = []string{".git", "node_modules", "bower_components"}

// benignStderr are diagnostics grep emits for unreadable entries. They are
// expected on real trees and never mean the search failed.
var benignStderr = []string{"permission denied", "is a directory"}

// Grep searches with the system grep binary.
type Grep struct {
	Probe Probe

	run runFunc
}

// Name returns "grep".
func (g *Grep) Name() string { return NameGrep }

// Args returns the grep command line for q. The search always runs from
// q.Dir with "." as the target so reported paths are relative.
func (g *Grep) Args(q Query) []string {
	args := []string{"-r", "-n", "-H", "-E"}
	for _, d := range excludeDirs {
		args = append(args, "--exclude-dir="+d)
	}
	if q.Include != "" {
		args = append(args, "--include="+q.Include)
	}
	return append(args, "-e", q.Pattern, ".")
}

// Attempt runs grep in q.Dir. Exit status 1 means no matches. Any other
// non-zero status is a failure only when stderr holds something other than
// benign permission/directory noise.
func (g *Grep) Attempt(ctx context.Context, q Query) (Outcome, error) {
	if !probeOrDefault(g.Probe).Available("grep") {
		return Outcome{}, fmt.Errorf("%w: grep not found on PATH", ErrUnavailable)
	}

	run := g.run
	if run == nil {
		run = proc.Run
	}
	res, err := run(ctx, q.Dir, "grep", g.Args(q)...)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Strategy: NameGrep, FilesScanned: -1}
	if res.ExitCode == 1 {
		return out, nil
	}
	if res.ExitCode != 0 {
		if diag := filterStderr(string(res.Stderr)); diag != "" {
			return Outcome{}, fmt.Errorf("%w: grep exited with status %d: %s", ErrFailed, res.ExitCode, diag)
		}
	}
	out.Raw = string(res.Stdout)
	out.Matches = match.Parse(out.Raw, q.Dir)
	return out, nil
}

// filterStderr drops benign diagnostic lines and returns what remains.
func filterStderr(stderr string) string {
	var kept []string
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isBenign(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isBenign(line string) bool {
	lower := strings.ToLower(line)
	for _, b := range benignStderr {
		if strings.Contains(lower, b) {
			return true
		}
	}
	return false
}
