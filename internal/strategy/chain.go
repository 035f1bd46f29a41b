package strategy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Chain tries strategies in order and returns the first success.
type Chain struct {
	Strategies []Strategy
	Logger     *slog.Logger
}

// Options configures the default chain.
type Options struct {
	Probe         Probe        // nil uses SystemProbe
	Logger        *slog.Logger // nil uses slog.Default()
	Disable       []string     // strategy names to leave out; walk is always kept
	MaxLineLength int          // passed to Walk
}

// ErrUnknownStrategy is returned by New for a name it does not recognise.
var ErrUnknownStrategy = errors.New("unknown strategy")

// New returns the strategy called name, configured from opts.
func New(name string, opts Options) (Strategy, error) {
	switch name {
	case NameGit:
		return &Git{Probe: opts.Probe}, nil
	case NameGrep:
		return &Grep{Probe: opts.Probe}, nil
	case NameWalk:
		return &Walk{Logger: opts.Logger, MaxLineLength: opts.MaxLineLength}, nil
	}
	return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownStrategy, name, strings.Join(Names(), ", "))
}

// NewChain builds the standard git -> grep -> walk chain.
func NewChain(opts Options) *Chain {
	var list []Strategy
	for _, name := range Names() {
		if name != NameWalk && slices.Contains(opts.Disable, name) {
			continue
		}
		s, _ := New(name, opts)
		list = append(list, s)
	}
	return &Chain{Strategies: list, Logger: opts.Logger}
}

// Run executes the chain for q.
//
// Unavailable strategies are skipped silently. Failed strategies are logged
// at debug level and skipped. If the last strategy fails its error is
// returned. Cancellation stops the chain at once: the partial outcome of the
// strategy that was running is returned with ctx's error.
//
// The returned Outcome.Reason records why each earlier strategy was passed
// over, e.g. "git skipped (strategy unavailable: not a git repository);
// grep selected".
func (c *Chain) Run(ctx context.Context, q Query) (Outcome, error) {
	logger := loggerOrDefault(c.Logger)
	var trail []string
	var lastErr error

	for _, s := range c.Strategies {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}

		out, err := s.Attempt(ctx, q)
		if err == nil {
			trail = append(trail, s.Name()+" selected")
			out.Strategy = s.Name()
			out.Reason = strings.Join(trail, "; ")
			return out, nil
		}

		if ctx.Err() != nil {
			out.Strategy = s.Name()
			return out, err
		}

		if errors.Is(err, ErrUnavailable) {
			trail = append(trail, fmt.Sprintf("%s skipped (%v)", s.Name(), err))
			continue
		}

		logger.Debug("search strategy failed, falling back",
			"strategy", s.Name(), "dir", q.Dir, "error", err)
		trail = append(trail, fmt.Sprintf("%s failed (%v)", s.Name(), err))
		lastErr = err
	}

	if lastErr == nil {
		lastErr = ErrNoStrategy
	}
	return Outcome{}, lastErr
}
