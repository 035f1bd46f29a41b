// Package search runs content searches across the workspace.
//
// The Engine validates a request, fans the strategy chain out over every
// directory in scope, merges and groups the matches, renders the summary a
// caller sees and, when telemetry is enabled, records how the search went.
// Telemetry is fed only after the match list is final, so enabling it can
// never change what a search returns.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jpl-au/seek/internal/format"
	"github.com/jpl-au/seek/internal/match"
	"github.com/jpl-au/seek/internal/relevance"
	"github.com/jpl-au/seek/internal/strategy"
	"github.com/jpl-au/seek/internal/telemetry"
	"github.com/jpl-au/seek/internal/validate"
	"github.com/jpl-au/seek/internal/workspace"
)

// ErrSearchFailed wraps any error that escaped the strategy chain.
var ErrSearchFailed = errors.New("search failed")

// Kind is the telemetry search type recorded for content searches.
const Kind = "grep"

// DefaultTimeout bounds a search when no timeout option is given.
const DefaultTimeout = 30 * time.Second

// Request is one content search.
type Request struct {
	Pattern string `json:"pattern"`
	Path    string `json:"path,omitempty"`    // directory to search; empty for every root
	Include string `json:"include,omitempty"` // glob filter such as "*.md"
}

// Result is what a search produced. Summary is always set, including on
// failure, so callers can show it without inspecting the error.
type Result struct {
	Summary      string         `json:"summary"`
	Display      string         `json:"display"`
	Matches      []match.Record `json:"matches"`
	Files        []match.File   `json:"-"`
	Strategy     string         `json:"strategy,omitempty"`
	Reason       string         `json:"reason,omitempty"`
	FilesScanned int            `json:"files_scanned"`
	SessionID    string         `json:"session_id,omitempty"`
}

// Total returns the number of matches.
func (r Result) Total() int { return len(r.Matches) }

// Runner executes a query against one directory. *strategy.Chain is the
// production implementation.
type Runner interface {
	Run(ctx context.Context, q strategy.Query) (strategy.Outcome, error)
}

// Engine executes searches. It is safe for concurrent use.
type Engine struct {
	policy    workspace.Policy
	collector *telemetry.Collector
	runner    Runner
	timeout   time.Duration
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCollector records a telemetry session for every search.
func WithCollector(c *telemetry.Collector) Option {
	return func(e *Engine) { e.collector = c }
}

// WithStrategies replaces the default git -> grep -> walk chain.
func WithStrategies(s ...strategy.Strategy) Option {
	return func(e *Engine) { e.runner = &strategy.Chain{Strategies: s} }
}

// WithRunner sets the runner directly, typically a configured *strategy.Chain.
func WithRunner(r Runner) Option {
	return func(e *Engine) { e.runner = r }
}

// WithTimeout bounds each search. Zero or negative disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New returns an engine restricted to policy.
func New(policy workspace.Policy, opts ...Option) *Engine {
	e := &Engine{policy: policy, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.runner == nil {
		e.runner = strategy.NewChain(strategy.Options{Logger: e.logger})
	}
	if c, ok := e.runner.(*strategy.Chain); ok && c.Logger == nil {
		c.Logger = e.logger
	}
	return e
}

// Collector returns the engine's telemetry collector, which may be nil.
func (e *Engine) Collector() *telemetry.Collector { return e.collector }

// Policy returns the workspace policy the engine enforces.
func (e *Engine) Policy() workspace.Policy { return e.policy }

// Resolve validates req and returns the directories it covers. Relative
// paths are resolved against the first workspace root.
func (e *Engine) Resolve(req Request) ([]string, error) {
	if _, err := validate.Pattern(req.Pattern); err != nil {
		return nil, err
	}
	if err := validate.Include(req.Include); err != nil {
		return nil, err
	}
	roots := e.policy.Roots()
	if req.Path == "" {
		return roots, nil
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("%w: %s", validate.ErrOutsideWorkspace, req.Path)
	}
	dir, err := validate.Dir(e.policy, roots[0], req.Path)
	if err != nil {
		return nil, err
	}
	return []string{dir}, nil
}

// rootOutcome is one directory's share of a search.
type rootOutcome struct {
	dir string
	out strategy.Outcome
}

// Search runs req. Validation failures return an error wrapping a validate
// sentinel; anything the strategies could not recover from returns an error
// wrapping ErrSearchFailed. Zero matches is not an error.
func (e *Engine) Search(ctx context.Context, req Request) (Result, error) {
	dirs, err := e.Resolve(req)
	if err != nil {
		res := Result{Display: "Error: " + err.Error()}
		res.Summary = err.Error()
		return res, err
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	sess := e.begin(req)
	roots, err := e.run(ctx, req, dirs)
	if err != nil {
		e.logger.Error("search failed",
			"pattern", req.Pattern, "path", req.Path, "include", req.Include, "error", err)
		err = fmt.Errorf("%w: %w", ErrSearchFailed, err)
		var res Result
		res.Summary, res.Display = format.Failure(err)
		return res, err
	}

	res := merge(roots)
	res.Summary = format.Summary(req.Pattern, req.Path, req.Include, res.Files)
	res.Display = format.Display(res.Total())
	e.logger.Debug("search complete",
		"pattern", req.Pattern, "strategy", res.Strategy, "matches", res.Total(),
		"files_scanned", res.FilesScanned, "elapsed", time.Since(start))

	res.SessionID = e.observe(sess, req, roots, res)
	return res, nil
}

// run searches every directory concurrently. Outcomes keep dirs' order.
func (e *Engine) run(ctx context.Context, req Request, dirs []string) ([]rootOutcome, error) {
	outcomes := make([]rootOutcome, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	for i, dir := range dirs {
		g.Go(func() error {
			out, err := e.runner.Run(gctx, strategy.Query{
				Pattern: req.Pattern,
				Dir:     dir,
				Include: req.Include,
			})
			outcomes[i] = rootOutcome{dir: dir, out: out}
			if err != nil {
				return fmt.Errorf("%s: %w", dir, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// merge combines per-directory outcomes. With more than one directory every
// path is prefixed with its directory's label.
func merge(roots []rootOutcome) Result {
	var res Result
	multi := len(roots) > 1
	names := labels(dirsOf(roots))
	var strategies, reasons []string

	for i, r := range roots {
		recs := r.out.Matches
		if multi {
			recs = match.Prefix(recs, names[i])
		}
		res.Matches = append(res.Matches, recs...)
		res.FilesScanned += scanned(r.out)

		if !slices.Contains(strategies, r.out.Strategy) {
			strategies = append(strategies, r.out.Strategy)
		}
		reason := r.out.Reason
		if multi {
			reason = names[i] + ": " + reason
		}
		reasons = append(reasons, reason)
	}

	// Matches follow the grouped order: files first-seen, lines ascending.
	res.Files = match.Group(res.Matches)
	res.Matches = nil
	for _, f := range res.Files {
		res.Matches = append(res.Matches, f.Matches...)
	}
	res.Strategy = strings.Join(strategies, ",")
	res.Reason = strings.Join(reasons, " | ")
	return res
}

// scanned is the walk's own count when it has one, otherwise the number of
// distinct files that matched.
func scanned(out strategy.Outcome) int {
	if out.FilesScanned >= 0 {
		return out.FilesScanned
	}
	return match.Files(out.Matches)
}

// begin opens the telemetry session before any strategy runs, so its
// timestamp and execution time cover the whole search. It stays empty until
// observe feeds it the final result.
func (e *Engine) begin(req Request) telemetry.Session {
	return e.collector.StartSession(req.Pattern, Kind, format.Scope(req.Path))
}

// observe records the finished search in s and returns the session ID.
func (e *Engine) observe(s telemetry.Session, req Request, roots []rootOutcome, res Result) string {
	if !s.IsActive() {
		return ""
	}

	s.SetPattern(req.Pattern)
	s.SetSearchParameters(map[string]any{
		"pattern": req.Pattern,
		"path":    req.Path,
		"include": req.Include,
	})
	s.SetStrategy(res.Strategy)
	s.SetToolDecisionReason(res.Reason)
	s.SetFilesScanned(res.FilesScanned)

	multi := len(roots) > 1
	names := labels(dirsOf(roots))
	for i, r := range roots {
		for _, m := range r.out.Matches {
			file := filepath.Join(r.dir, filepath.FromSlash(m.Path))
			if multi {
				m.Path = names[i] + "/" + m.Path
			}
			s.AddMatch(file, m)
		}
	}
	for _, f := range relevance.Factors(req.Pattern, res.FilesScanned, res.Total(), req.Include) {
		s.AddRankingFactor(f)
	}

	rec, ok := s.Complete()
	if !ok {
		return ""
	}
	return rec.ID
}
