// Package telemetry records how searches were performed.
//
// A Collector is created once at the composition root and handed to the
// search engine. Each search opens a Session, which mirrors the search's
// progress (strategy chosen, files scanned, per-match analytics, ranking
// factors) and is completed exactly once. Completed sessions are appended to
// the collector's in-memory history, optionally persisted to SQLite, and
// passed to a completion callback.
//
// Telemetry only observes. Sessions are fed after the match list exists and
// nothing they do flows back into search results. When the collector is
// disabled (or nil) StartSession returns an inert session and no record is
// ever allocated.
package telemetry

import (
	"time"

	"github.com/jpl-au/seek/internal/relevance"
)

// RankingFactor is a weighted signal summarising one search.
type RankingFactor = relevance.Factor

// Record is the telemetry trace of one search.
type Record struct {
	ID             string           `json:"id"`
	Timestamp      time.Time        `json:"timestamp"`
	Query          string           `json:"query"`
	SearchType     string           `json:"search_type"`
	TargetPath     string           `json:"target_path"`
	Pattern        string           `json:"pattern,omitempty"`
	ExecutionMS    int64            `json:"execution_time_ms"`
	ResultsFound   int              `json:"results_found"`
	FilesScanned   int              `json:"files_scanned"`
	Matches        []MatchAnalytics `json:"match_details"`
	Strategy       string           `json:"search_strategy,omitempty"`
	RankingFactors []RankingFactor  `json:"ranking_factors,omitempty"`
	DecisionReason string           `json:"tool_decision_reason,omitempty"`
	Parameters     map[string]any   `json:"search_parameters,omitempty"`
}

// MatchAnalytics describes one reported match.
type MatchAnalytics struct {
	Path          string    `json:"file_path"`
	Line          int       `json:"line_number"`
	Text          string    `json:"match_text"`
	ContextBefore []string  `json:"context_before,omitempty"`
	ContextAfter  []string  `json:"context_after,omitempty"`
	Relevance     float64   `json:"relevance_score"`
	Reason        string    `json:"match_reason"`
	FileSize      int64     `json:"file_size"`
	FileModified  time.Time `json:"file_last_modified"`
}

// AverageRelevance returns the mean relevance over all matches, or 0.
func (r Record) AverageRelevance() float64 {
	if len(r.Matches) == 0 {
		return 0
	}
	var sum float64
	for _, m := range r.Matches {
		sum += m.Relevance
	}
	return sum / float64(len(r.Matches))
}

// clone returns a copy whose slices and map are not shared with r.
func (r Record) clone() Record {
	c := r
	c.Matches = append([]MatchAnalytics(nil), r.Matches...)
	c.RankingFactors = append([]RankingFactor(nil), r.RankingFactors...)
	if r.Parameters != nil {
		c.Parameters = make(map[string]any, len(r.Parameters))
		for k, v := range r.Parameters {
			c.Parameters[k] = v
		}
	}
	return c
}
