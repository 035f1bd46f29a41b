package strategy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/seek/internal/proc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProbe reports a fixed environment.
type fakeProbe struct {
	tools map[string]bool
	repo  bool
}

func (p fakeProbe) Available(name string) bool { return p.tools[name] }
func (p fakeProbe) IsRepository(_ string) bool { return p.repo }

func allTools() fakeProbe {
	return fakeProbe{tools: map[string]bool{"git": true, "grep": true}, repo: true}
}

func noTools() fakeProbe { return fakeProbe{} }

// fixedRun returns a runner that always yields res and err.
func fixedRun(res proc.Result, err error) runFunc {
	return func(context.Context, string, string, ...string) (proc.Result, error) { return res, err }
}

// writeFiles creates files under dir from a path -> content map.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for p, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func TestGitArgs(t *testing.T) {
	g := &Git{}
	assert.Equal(t,
		[]string{"grep", "--untracked", "-n", "-E", "--ignore-case", "-e", "TODO"},
		g.Args(Query{Pattern: "TODO"}))
	assert.Equal(t,
		[]string{"grep", "--untracked", "-n", "-E", "--ignore-case", "-e", "x|y", "--", "*.go"},
		g.Args(Query{Pattern: "x|y", Include: "*.go"}))
}

func TestGrepArgs(t *testing.T) {
	g := &Grep{}
	args := g.Args(Query{Pattern: "TODO", Include: "*.md"})
	assert.Equal(t, []string{"-r", "-n", "-H", "-E"}, args[:4])
	assert.Contains(t, args, "--exclude-dir=.git")
	assert.Contains(t, args, "--exclude-dir=node_modules")
	assert.Contains(t, args, "--exclude-dir=bower_components")
	assert.Contains(t, args, "--include=*.md")
	assert.Equal(t, []string{"-e", "TODO", "."}, args[len(args)-3:])

	assert.NotContains(t, g.Args(Query{Pattern: "x"}), "--include=")
}

func TestGit_Attempt(t *testing.T) {
	ctx := context.Background()
	q := Query{Pattern: "todo", Dir: t.TempDir()}

	t.Run("not a repository", func(t *testing.T) {
		g := &Git{Probe: fakeProbe{tools: map[string]bool{"git": true}}}
		_, err := g.Attempt(ctx, q)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("git missing", func(t *testing.T) {
		g := &Git{Probe: fakeProbe{repo: true}}
		_, err := g.Attempt(ctx, q)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("exit 0 parses output", func(t *testing.T) {
		g := &Git{Probe: allTools(), run: fixedRun(proc.Result{Stdout: []byte("a.txt:3:// TODO fix\n")}, nil)}
		out, err := g.Attempt(ctx, q)
		require.NoError(t, err)
		require.Len(t, out.Matches, 1)
		assert.Equal(t, "a.txt", out.Matches[0].Path)
		assert.Equal(t, 3, out.Matches[0].Line)
		assert.Equal(t, -1, out.FilesScanned)
	})

	t.Run("exit 1 is no matches", func(t *testing.T) {
		g := &Git{Probe: allTools(), run: fixedRun(proc.Result{ExitCode: 1}, nil)}
		out, err := g.Attempt(ctx, q)
		require.NoError(t, err)
		assert.Empty(t, out.Matches)
	})

	t.Run("other exit is failure", func(t *testing.T) {
		g := &Git{Probe: allTools(), run: fixedRun(proc.Result{ExitCode: 128, Stderr: []byte("fatal: bad")}, nil)}
		_, err := g.Attempt(ctx, q)
		assert.ErrorIs(t, err, ErrFailed)
		assert.NotErrorIs(t, err, ErrUnavailable)
	})

	t.Run("run error is returned", func(t *testing.T) {
		g := &Git{Probe: allTools(), run: fixedRun(proc.Result{}, proc.ErrTimeout)}
		_, err := g.Attempt(ctx, q)
		assert.ErrorIs(t, err, proc.ErrTimeout)
	})
}

func TestGrep_Attempt(t *testing.T) {
	ctx := context.Background()
	q := Query{Pattern: "todo", Dir: t.TempDir()}

	t.Run("grep missing", func(t *testing.T) {
		g := &Grep{Probe: noTools()}
		_, err := g.Attempt(ctx, q)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("exit 1 is no matches", func(t *testing.T) {
		g := &Grep{Probe: allTools(), run: fixedRun(proc.Result{ExitCode: 1, Stderr: []byte("grep: x: Permission denied")}, nil)}
		out, err := g.Attempt(ctx, q)
		require.NoError(t, err)
		assert.Empty(t, out.Matches)
	})

	t.Run("benign stderr is not a failure", func(t *testing.T) {
		res := proc.Result{
			ExitCode: 2,
			Stdout:   []byte("./a.txt:1:todo\n"),
			Stderr:   []byte("grep: ./secret: Permission denied\ngrep: ./dir: Is a directory\n"),
		}
		g := &Grep{Probe: allTools(), run: fixedRun(res, nil)}
		out, err := g.Attempt(ctx, q)
		require.NoError(t, err)
		require.Len(t, out.Matches, 1)
		assert.Equal(t, "a.txt", out.Matches[0].Path)
	})

	t.Run("real diagnostics are a failure", func(t *testing.T) {
		res := proc.Result{ExitCode: 2, Stderr: []byte("grep: Unmatched ( or \\(\n")}
		g := &Grep{Probe: allTools(), run: fixedRun(res, nil)}
		_, err := g.Attempt(ctx, q)
		assert.ErrorIs(t, err, ErrFailed)
		assert.Contains(t, err.Error(), "Unmatched")
	})
}

func TestFilterStderr(t *testing.T) {
	in := "grep: a: Permission denied\n\ngrep: b: Is a directory\ngrep: c: Input/output error\n"
	assert.Equal(t, "grep: c: Input/output error", filterStderr(in))
	assert.Equal(t, "", filterStderr("grep: a: PERMISSION DENIED"))
}

func TestNewChain(t *testing.T) {
	names := func(c *Chain) []string {
		var out []string
		for _, s := range c.Strategies {
			out = append(out, s.Name())
		}
		return out
	}

	assert.Equal(t, Names(), names(NewChain(Options{})))
	assert.Equal(t, []string{NameGrep, NameWalk}, names(NewChain(Options{Disable: []string{NameGit}})))
	assert.Equal(t, []string{NameWalk}, names(NewChain(Options{Disable: []string{NameGit, NameGrep, NameWalk}})))
}

func TestSystemProbe(t *testing.T) {
	var p Probe = SystemProbe{}
	assert.False(t, p.Available("seek-definitely-not-a-real-binary"))
}
