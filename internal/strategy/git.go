package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/seek/internal/match"
	"github.com/jpl-au/seek/internal/proc"
)

// runFunc executes a tool and captures its output. Swapped in tests.
type runFunc func(ctx context.Context, dir, name string, args ...string) (proc.Result, error)

// Git searches with git grep. It only applies inside a working tree, and
// honours .gitignore while still including untracked files.
type Git struct {
	Probe Probe

	run runFunc
}

// Name returns "git".
func (g *Git) Name() string { return NameGit }

// Args returns the git command line for q.
func (g *Git) Args(q Query) []string {
	args := []string{"grep", "--untracked", "-n", "-E", "--ignore-case", "-e", q.Pattern}
	if q.Include != "" {
		args = append(args, "--", q.Include)
	}
	return args
}

// Attempt runs git grep in q.Dir. Exit status 1 means no matches; any other
// non-zero status is a failure.
func (g *Git) Attempt(ctx context.Context, q Query) (Outcome, error) {
	probe := probeOrDefault(g.Probe)
	if !probe.IsRepository(q.Dir) {
		return Outcome{}, fmt.Errorf("%w: not a git repository", ErrUnavailable)
	}
	if !probe.Available("git") {
		return Outcome{}, fmt.Errorf("%w: git not found on PATH", ErrUnavailable)
	}

	run := g.run
	if run == nil {
		run = proc.Run
	}
	res, err := run(ctx, q.Dir, "git", g.Args(q)...)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Strategy: NameGit, FilesScanned: -1}
	switch res.ExitCode {
	case 0:
		out.Raw = string(res.Stdout)
		out.Matches = match.Parse(out.Raw, q.Dir)
		return out, nil
	case 1:
		return out, nil
	default:
		return Outcome{}, fmt.Errorf("%w: git grep exited with status %d: %s",
			ErrFailed, res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}
}
