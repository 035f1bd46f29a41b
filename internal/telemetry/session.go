package telemetry

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jpl-au/seek/internal/match"
	"github.com/jpl-au/seek/internal/relevance"
)

// contextLines is how many lines either side of a match are captured.
const contextLines = 2

// Session accumulates telemetry for one search.
//
// Every method is safe to call after Complete; they do nothing.
type Session interface {
	SetPattern(pattern string)
	// AddMatch records analytics for r. file is the on-disk location used
	// for stat and context; r.Path is what the caller reported.
	AddMatch(file string, r match.Record)
	SetFilesScanned(n int)
	AddRankingFactor(f RankingFactor)
	SetToolDecisionReason(reason string)
	SetSearchParameters(params map[string]any)
	SetStrategy(name string)
	// Complete finalises the session. The second result is false when the
	// session was already completed or telemetry is disabled.
	Complete() (Record, bool)
	IsActive() bool
}

// nopSession is returned when telemetry is disabled.
type nopSession struct{}

func (nopSession) SetPattern(string)                  {}
func (nopSession) AddMatch(string, match.Record)      {}
func (nopSession) SetFilesScanned(int)                {}
func (nopSession) AddRankingFactor(RankingFactor)     {}
func (nopSession) SetToolDecisionReason(string)       {}
func (nopSession) SetSearchParameters(map[string]any) {}
func (nopSession) SetStrategy(string)                 {}
func (nopSession) Complete() (Record, bool)           { return Record{}, false }
func (nopSession) IsActive() bool                     { return false }

type session struct {
	collector *Collector
	started   time.Time

	mu     sync.Mutex
	done   bool
	record Record

	// Most recently read file. Matches usually arrive grouped by file.
	cachedFile  string
	cachedLines []string
}

func (s *session) SetPattern(pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.done {
		s.record.Pattern = pattern
	}
}

func (s *session) AddMatch(file string, r match.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}

	pattern := s.record.Pattern
	a := MatchAnalytics{
		Path:      r.Path,
		Line:      r.Line,
		Text:      r.Text,
		Relevance: relevance.Score(r.Text, pattern, r.Path),
		Reason:    relevance.Reason(r.Text, pattern, r.Path, r.Line),
	}
	if info, err := os.Stat(file); err == nil {
		a.FileSize = info.Size()
		a.FileModified = info.ModTime()
	}
	if lines := s.lines(file); lines != nil {
		a.ContextBefore, a.ContextAfter = surrounding(lines, r.Line)
	}

	s.record.Matches = append(s.record.Matches, a)
	s.record.ResultsFound = len(s.record.Matches)
}

func (s *session) SetFilesScanned(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.done {
		s.record.FilesScanned = n
	}
}

func (s *session) AddRankingFactor(f RankingFactor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.done {
		s.record.RankingFactors = append(s.record.RankingFactors, f)
	}
}

func (s *session) SetToolDecisionReason(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.done {
		s.record.DecisionReason = reason
	}
}

func (s *session) SetSearchParameters(params map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	if s.record.Parameters == nil {
		s.record.Parameters = make(map[string]any, len(params))
	}
	for k, v := range params {
		s.record.Parameters[k] = v
	}
}

func (s *session) SetStrategy(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.done {
		s.record.Strategy = name
	}
}

func (s *session) Complete() (Record, bool) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return Record{}, false
	}
	s.done = true
	s.record.ExecutionMS = s.collector.now().Sub(s.started).Milliseconds()
	s.record.ResultsFound = len(s.record.Matches)
	r := s.record.clone()
	s.cachedLines = nil
	s.mu.Unlock()

	s.collector.finish(r)
	return r, true
}

func (s *session) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.done
}

// lines returns the lines of file, or nil if it cannot be read.
func (s *session) lines(file string) []string {
	if file == s.cachedFile && s.cachedLines != nil {
		return s.cachedLines
	}
	lines, err := readLines(file)
	if err != nil {
		return nil
	}
	s.cachedFile, s.cachedLines = file, lines
	return lines
}

func readLines(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// surrounding returns up to contextLines lines before and after the 1-based
// line n. Out of range line numbers yield nothing.
func surrounding(lines []string, n int) (before, after []string) {
	i := n - 1
	if i < 0 || i >= len(lines) {
		return nil, nil
	}
	start := max(0, i-contextLines)
	end := min(len(lines), i+1+contextLines)
	if start < i {
		before = append([]string(nil), lines[start:i]...)
	}
	if i+1 < end {
		after = append([]string(nil), lines[i+1:end]...)
	}
	return before, after
}
