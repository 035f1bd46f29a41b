package search

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jpl-au/seek/internal/match"
	"github.com/jpl-au/seek/internal/strategy"
)

// Comparison is what one strategy found across every directory of a request.
type Comparison struct {
	Strategy string         `json:"strategy"`
	Matches  []match.Record `json:"matches"`
	Elapsed  time.Duration  `json:"elapsed_ns"`
	Err      error          `json:"-"`
	Error    string         `json:"error,omitempty"`
}

// Available reports whether the strategy could run at all.
func (c Comparison) Available() bool {
	return !errors.Is(c.Err, strategy.ErrUnavailable)
}

// Compare runs each strategy directly, outside the fallback chain, so their
// results can be checked against each other. Strategies run concurrently;
// the result keeps their order. A strategy error is recorded in its
// Comparison rather than returned. Compare records no telemetry.
func (e *Engine) Compare(ctx context.Context, req Request, strategies []strategy.Strategy) ([]Comparison, error) {
	dirs, err := e.Resolve(req)
	if err != nil {
		return nil, err
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	out := make([]Comparison, len(strategies))
	var g errgroup.Group
	for i, s := range strategies {
		g.Go(func() error {
			out[i] = attempt(ctx, s, req, dirs)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// attempt runs s over dirs in order, stopping at the first error.
func attempt(ctx context.Context, s strategy.Strategy, req Request, dirs []string) Comparison {
	c := Comparison{Strategy: s.Name()}
	start := time.Now()
	multi := len(dirs) > 1
	names := labels(dirs)
	for i, dir := range dirs {
		o, err := s.Attempt(ctx, strategy.Query{Pattern: req.Pattern, Dir: dir, Include: req.Include})
		if err != nil {
			c.Err, c.Error = err, err.Error()
			break
		}
		recs := o.Matches
		if multi {
			recs = match.Prefix(recs, names[i])
		}
		c.Matches = append(c.Matches, recs...)
	}
	c.Elapsed = time.Since(start)
	return c
}
