package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/seek/internal/telemetry"
)

// shortID is how much of a session UUID list views show.
const shortID = 8

// Sessions prints telemetry records in long format.
//
// Column order is ID, WHEN, STRATEGY, RESULTS, FILES, MS, PATTERN. Fixed-width
// columns come first so they align; the pattern goes last because its width
// varies.
func Sessions(w io.Writer, records []telemetry.Record) error {
	if len(records) == 0 {
		return nil
	}

	maxStrategy := 8 // minimum "STRATEGY"
	for _, r := range records {
		maxStrategy = max(maxStrategy, len(r.Strategy))
	}

	fmt.Fprintf(w, "%-8s  %-16s  %-*s  %7s  %5s  %6s  %s\n",
		"ID", "WHEN", maxStrategy, "STRATEGY", "RESULTS", "FILES", "MS", "PATTERN")
	for _, r := range records {
		strategy := r.Strategy
		if strategy == "" {
			strategy = "-"
		}
		fmt.Fprintf(w, "%-8s  %-16s  %-*s  %7d  %5d  %6d  %q\n",
			Short(r.ID), r.Timestamp.Local().Format("2006-01-02 15:04"),
			maxStrategy, strategy, r.ResultsFound, r.FilesScanned, r.ExecutionMS, r.Pattern)
	}
	return nil
}

// Short truncates a session ID for display.
func Short(id string) string {
	if len(id) <= shortID {
		return id
	}
	return id[:shortID]
}

// Report renders one session as a markdown document.
func Report(r telemetry.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Search session %s\n\n", Short(r.ID))
	b.WriteString("| Field | Value |\n|---|---|\n")
	row := func(k, v string) { fmt.Fprintf(&b, "| %s | %s |\n", k, cell(v)) }
	row("ID", r.ID)
	row("When", r.Timestamp.Local().Format("2006-01-02 15:04:05"))
	row("Type", r.SearchType)
	row("Pattern", "`"+r.Pattern+"`")
	row("Target", r.TargetPath)
	row("Strategy", r.Strategy)
	row("Results", fmt.Sprint(r.ResultsFound))
	row("Files scanned", fmt.Sprint(r.FilesScanned))
	row("Duration", fmt.Sprintf("%d ms", r.ExecutionMS))
	row("Average relevance", fmt.Sprintf("%.2f", r.AverageRelevance()))
	if r.DecisionReason != "" {
		row("Decision", r.DecisionReason)
	}

	if len(r.RankingFactors) > 0 {
		b.WriteString("\n## Ranking factors\n\n")
		b.WriteString("| Factor | Weight | Value | Impact | Explanation |\n|---|---|---|---|---|\n")
		for _, f := range r.RankingFactors {
			fmt.Fprintf(&b, "| %s | %.2f | %.2f | %.3f | %s |\n",
				f.Name, f.Weight, f.Value, f.Impact, cell(f.Explanation))
		}
	}

	if len(r.Matches) > 0 {
		b.WriteString("\n## Matches\n")
		for _, m := range r.Matches {
			fmt.Fprintf(&b, "\n### %s:%d\n\n", m.Path, m.Line)
			fmt.Fprintf(&b, "Relevance %.2f (%s)", m.Relevance, m.Reason)
			if m.FileSize > 0 {
				fmt.Fprintf(&b, ", file %s", humanSize(m.FileSize))
			}
			b.WriteString("\n\n```\n")
			for _, l := range m.ContextBefore {
				b.WriteString("  " + l + "\n")
			}
			b.WriteString("> " + m.Text + "\n")
			for _, l := range m.ContextAfter {
				b.WriteString("  " + l + "\n")
			}
			b.WriteString("```\n")
		}
	}
	return b.String()
}

// cell escapes a value for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
