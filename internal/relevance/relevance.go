// Package relevance computes heuristic quality signals for search telemetry.
//
// Nothing here affects which matches a search returns or their order. The
// per-match score and the aggregate ranking factors are recorded in the
// search session so searches can be analysed afterwards.
package relevance

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// favoured are source extensions that earn a small score bonus.
var favoured = map[string]bool{
	".go": true, ".ts": true, ".tsx": true, ".js": true, ".jsx": true,
	".py": true, ".java": true, ".rs": true, ".c": true, ".cpp": true,
	".h": true, ".rb": true,
}

// metachars are the characters counted as regex syntax.
const metachars = `.*+?^${}()|[]\`

// shorthand are the character-class escapes that mark a deliberate regex.
var shorthand = []string{`\w`, `\s`, `\d`, `\W`, `\S`, `\D`}

// Score returns a 0..1 relevance estimate for one matching line.
//
// Starts at 0.5 and adds independent bonuses: pattern appears literally
// (+0.2), short trimmed line (<100 +0.1, <50 another +0.1), match within the
// first 10 characters (+0.1), favoured file extension (+0.1). Capped at 1.
func Score(line, pattern, path string) float64 {
	score := 0.5
	trimmed := strings.TrimSpace(line)

	if strings.Contains(strings.ToLower(line), strings.ToLower(pattern)) {
		score += 0.2
	}
	if len(trimmed) < 100 {
		score += 0.1
	}
	if len(trimmed) < 50 {
		score += 0.1
	}
	if pos := position(trimmed, pattern); pos >= 0 && pos < 10 {
		score += 0.1
	}
	if favoured[strings.ToLower(filepath.Ext(path))] {
		score += 0.1
	}
	return math.Min(score, 1.0)
}

// position returns the index of the first case-insensitive match of pattern
// in s, or -1. Falls back to a substring search when pattern is not a valid
// regex.
func position(s, pattern string) int {
	if re, err := regexp.Compile("(?i)" + pattern); err == nil {
		if loc := re.FindStringIndex(s); loc != nil {
			return loc[0]
		}
		return -1
	}
	return strings.Index(strings.ToLower(s), strings.ToLower(pattern))
}

// Reason explains in words why a line matched. Never empty.
func Reason(line, pattern, path string, lineNumber int) string {
	var reasons []string
	if strings.Contains(strings.ToLower(line), strings.ToLower(pattern)) {
		reasons = append(reasons, "exact match")
	}
	if strings.ContainsAny(pattern, metachars) {
		reasons = append(reasons, "regex match")
	}
	if ext := filepath.Ext(path); ext != "" {
		reasons = append(reasons, fmt.Sprintf("found in %s file", ext))
	}
	if lineNumber < 10 {
		reasons = append(reasons, "near file beginning")
	}
	if len(reasons) == 0 {
		return "pattern match"
	}
	return strings.Join(reasons, ", ")
}

// Complexity rates a pattern from 0 (plain word) to 1 (dense regex).
//
// 0.1 per metacharacter (max 0.5), 0.01 per character (max 0.3), +0.1 for
// mixed letter case, +0.2 for shorthand class escapes such as \w or \d.
func Complexity(pattern string) float64 {
	meta := 0
	for _, r := range pattern {
		if strings.ContainsRune(metachars, r) {
			meta++
		}
	}
	c := math.Min(float64(meta)*0.1, 0.5)
	c += math.Min(float64(utf8.RuneCountInString(pattern))*0.01, 0.3)

	if mixedCase(pattern) {
		c += 0.1
	}
	for _, s := range shorthand {
		if strings.Contains(pattern, s) {
			c += 0.2
			break
		}
	}
	return math.Min(c, 1.0)
}

func mixedCase(s string) bool {
	var upper, lower bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		}
	}
	return upper && lower
}
