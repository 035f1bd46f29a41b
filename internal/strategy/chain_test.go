package strategy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/jpl-au/seek/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStrategy returns a fixed outcome or error and counts calls.
type stubStrategy struct {
	name  string
	out   Outcome
	err   error
	calls int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Attempt(context.Context, Query) (Outcome, error) {
	s.calls++
	return s.out, s.err
}

func TestChain_Run(t *testing.T) {
	ctx := context.Background()
	hit := Outcome{Matches: []match.Record{{Path: "a.txt", Line: 1, Text: "x"}}}

	t.Run("first success wins", func(t *testing.T) {
		first := &stubStrategy{name: "one", out: hit}
		second := &stubStrategy{name: "two", out: hit}
		c := &Chain{Strategies: []Strategy{first, second}}

		out, err := c.Run(ctx, Query{})
		require.NoError(t, err)
		assert.Equal(t, "one", out.Strategy)
		assert.Equal(t, "one selected", out.Reason)
		assert.Equal(t, 1, first.calls)
		assert.Equal(t, 0, second.calls)
	})

	t.Run("unavailable falls through", func(t *testing.T) {
		first := &stubStrategy{name: "one", err: fmt.Errorf("%w: missing", ErrUnavailable)}
		second := &stubStrategy{name: "two", out: hit}
		c := &Chain{Strategies: []Strategy{first, second}}

		out, err := c.Run(ctx, Query{})
		require.NoError(t, err)
		assert.Equal(t, "two", out.Strategy)
		assert.Contains(t, out.Reason, "one skipped")
		assert.Contains(t, out.Reason, "two selected")
	})

	t.Run("failure falls through", func(t *testing.T) {
		first := &stubStrategy{name: "one", err: fmt.Errorf("%w: exit 2", ErrFailed)}
		second := &stubStrategy{name: "two", out: Outcome{}}
		c := &Chain{Strategies: []Strategy{first, second}}

		out, err := c.Run(ctx, Query{})
		require.NoError(t, err)
		assert.Equal(t, "two", out.Strategy)
		assert.Empty(t, out.Matches)
		assert.Contains(t, out.Reason, "one failed")
	})

	t.Run("last failure is returned", func(t *testing.T) {
		boom := errors.New("disk on fire")
		c := &Chain{Strategies: []Strategy{
			&stubStrategy{name: "one", err: ErrUnavailable},
			&stubStrategy{name: "two", err: boom},
		}}

		_, err := c.Run(ctx, Query{})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("empty chain", func(t *testing.T) {
		_, err := (&Chain{}).Run(ctx, Query{})
		assert.ErrorIs(t, err, ErrNoStrategy)
	})

	t.Run("cancelled before start", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		s := &stubStrategy{name: "one", out: hit}

		_, err := (&Chain{Strategies: []Strategy{s}}).Run(cctx, Query{})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, s.calls)
	})
}

// With git and grep reported unavailable the chain must produce exactly what
// the walk produces on its own.
func TestChain_FallbackParity(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt":          "alpha\n// TODO fix\n",
		"src/b.go":       "package b\n\n// todo: later\nfunc B() {}\n",
		"docs/readme.md": "# Readme\nNothing here\n",
	})
	q := Query{Pattern: "todo", Dir: dir}

	chain := NewChain(Options{Probe: noTools()})
	viaChain, err := chain.Run(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, NameWalk, viaChain.Strategy)

	direct, err := (&Walk{}).Attempt(context.Background(), q)
	require.NoError(t, err)

	assert.ElementsMatch(t, direct.Matches, viaChain.Matches)
	assert.Contains(t, viaChain.Reason, "git skipped")
	assert.Contains(t, viaChain.Reason, "grep skipped")
}

// The external tools, when installed, must agree with the walk on a simple
// tree. grep is case-sensitive, so the pattern matches case exactly.
func TestChain_ToolParity(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt":       "alpha\n// TODO fix\n",
		"sub/b.txt":   "TODO: b\nurl: http://x:80\n",
		"sub/c.md":    "no match\n",
		"notes/d.txt": "TODO last\n",
	})
	q := Query{Pattern: "TODO", Dir: dir}
	ctx := context.Background()

	walked, err := (&Walk{}).Attempt(ctx, q)
	require.NoError(t, err)

	t.Run("grep", func(t *testing.T) {
		if _, err := exec.LookPath("grep"); err != nil {
			t.Skip("grep not installed")
		}
		out, err := (&Grep{}).Attempt(ctx, q)
		require.NoError(t, err)
		assert.ElementsMatch(t, walked.Matches, out.Matches)
	})

	t.Run("git", func(t *testing.T) {
		if _, err := exec.LookPath("git"); err != nil {
			t.Skip("git not installed")
		}
		cmd := exec.Command("git", "init", "-q", ".")
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1")
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Skipf("git init failed: %v: %s", err, out)
		}

		out, err := (&Git{}).Attempt(ctx, q)
		require.NoError(t, err)
		assert.ElementsMatch(t, walked.Matches, out.Matches)
	})
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name, Options{})
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}

	_, err := New("ripgrep", Options{})
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	assert.Contains(t, err.Error(), "git, grep, walk")
}
