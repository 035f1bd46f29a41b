// compare.go implements "seek compare", which runs every search strategy on
// its own and reports where their results differ.
//
// The fallback chain promises that whichever backend answers, the caller
// sees the same matches. compare checks that promise on real trees: each
// strategy's match list is diffed against the walk's.

package search

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jpl-au/seek/cmd"
	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/diff"
	"github.com/jpl-au/seek/internal/log"
	"github.com/jpl-au/seek/internal/search"
	"github.com/jpl-au/seek/internal/strategy"
	"github.com/spf13/cobra"
)

// ErrStrategiesDiffer is returned when compared strategies disagree.
var ErrStrategiesDiffer = errors.New("strategies returned different matches")

// Report is one strategy checked against the baseline.
type Report struct {
	search.Comparison
	Usable  bool   `json:"available"`
	Total   int    `json:"total"`
	Equal   bool   `json:"equal"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Diff    string `json:"diff,omitempty"`

	result diff.Result
}

func (e *Extension) newCompareCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "compare <pattern> [path]",
		Short: "Run each search strategy separately and diff the results",
		Long: `Run git grep, grep and the built-in walk separately on the same query
and show how each differs from the walk.

  seek compare "TODO"
  seek compare "func \w+" src -g "*.go"
  seek compare "TODO" --strategies git,walk

Strategies that cannot run here (no repository, tool not installed) are
reported as unavailable. Exits non-zero when available strategies disagree.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runCompare,
	}
	c.Flags().StringP(extension.FlagInclude, "g", "", "Only search files matching this glob")
	c.Flags().StringSlice(extension.FlagStrategies, strategy.Names(), "Strategies to compare; the last is the baseline")
	return c
}

func (e *Extension) runCompare(c *cobra.Command, args []string) error {
	req := search.Request{Pattern: args[0]}
	if len(args) > 1 {
		req.Path = args[1]
	}
	req.Include, _ = c.Flags().GetString(extension.FlagInclude)
	names, _ := c.Flags().GetStringSlice(extension.FlagStrategies)

	reports, err := e.compare(c, req, names)

	log.Event("search:compare", "compare").
		Author(cmd.Author()).
		Path(req.Path).
		Pattern(req.Pattern).
		Detail("strategies", names).
		Write(err)

	if err != nil && !errors.Is(err, ErrStrategiesDiffer) {
		return cmd.PrintJSONError(fmt.Errorf("compare %q: %w", req.Pattern, err))
	}

	if cmd.JSON() {
		if perr := cmd.PrintJSON(reports); perr != nil {
			return perr
		}
		return err
	}

	w := cmd.Out()
	for _, r := range reports {
		fmt.Fprint(w, r.Summary(cmd.Colour()))
	}
	return err
}

func (e *Extension) compare(c *cobra.Command, req search.Request, names []string) ([]Report, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: none given", strategy.ErrUnknownStrategy)
	}
	opts := strategy.Options{MaxLineLength: e.cfg.MaxLineLength(), Logger: e.logger}
	list := make([]strategy.Strategy, 0, len(names))
	for _, name := range names {
		s, err := strategy.New(strings.TrimSpace(name), opts)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}

	results, err := e.engine.Compare(c.Context(), req, list)
	if err != nil {
		return nil, err
	}
	return Reports(results)
}

// Reports diffs every comparison against the last one, the baseline. It
// returns ErrStrategiesDiffer when any available strategy disagrees.
func Reports(results []search.Comparison) ([]Report, error) {
	if len(results) == 0 {
		return nil, nil
	}
	base := results[len(results)-1]
	reports := make([]Report, len(results))
	var differ bool
	for i, r := range results {
		rep := Report{Comparison: r, Usable: r.Available(), Total: len(r.Matches)}
		if r.Err == nil && base.Err == nil {
			d := diff.Matches(base.Matches, r.Matches, base.Strategy, r.Strategy)
			rep.result = d
			rep.Equal, rep.Added, rep.Removed = d.Equal(), d.Added, d.Removed
			if !d.Equal() {
				rep.Diff = d.Diff
				differ = true
			}
		}
		reports[i] = rep
	}
	if differ {
		return reports, ErrStrategiesDiffer
	}
	return reports, nil
}

// Summary renders one report for the terminal.
func (r Report) Summary(colour bool) string {
	var b strings.Builder
	switch {
	case !r.Usable:
		fmt.Fprintf(&b, "%-5s unavailable (%s)\n", r.Strategy, r.Error)
	case r.Err != nil:
		fmt.Fprintf(&b, "%-5s failed (%s)\n", r.Strategy, r.Error)
	case r.Equal:
		fmt.Fprintf(&b, "%-5s %d match(es) in %s, identical\n", r.Strategy, r.Total, r.Elapsed.Round(time.Microsecond))
	default:
		fmt.Fprintf(&b, "%-5s %d match(es) in %s, +%d -%d\n",
			r.Strategy, r.Total, r.Elapsed.Round(time.Microsecond), r.Added, r.Removed)
		b.WriteString(r.result.Format(colour))
	}
	return b.String()
}
