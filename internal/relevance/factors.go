package relevance

import (
	"fmt"
	"math"
)

// Ranking factor names.
const (
	FactorComplexity = "pattern_complexity"
	FactorScope      = "search_scope"
	FactorDensity    = "result_density"
	FactorFilter     = "filter_applied"
)

// Factor is one weighted signal describing a finished search.
type Factor struct {
	Name        string  `json:"factor"`
	Weight      float64 `json:"weight"`
	Value       float64 `json:"value"`
	Impact      float64 `json:"impact"`
	Explanation string  `json:"explanation"`
}

// NewFactor builds a factor with Impact = Value * Weight. Weight is clamped
// to [0, 1].
func NewFactor(name string, weight, value float64, explanation string) Factor {
	weight = math.Max(0, math.Min(weight, 1))
	return Factor{
		Name:        name,
		Weight:      weight,
		Value:       value,
		Impact:      value * weight,
		Explanation: explanation,
	}
}

// Factors computes the aggregate ranking factors for one search. The filter
// factor is only present when an include filter was used.
func Factors(pattern string, filesScanned, matches int, include string) []Factor {
	complexity := Complexity(pattern)
	scope := math.Min(float64(filesScanned)/100, 1.0)
	density := 0.0
	if filesScanned > 0 {
		density = float64(matches) / float64(filesScanned)
	}

	out := []Factor{
		NewFactor(FactorComplexity, 0.3, complexity,
			fmt.Sprintf("pattern complexity %.2f", complexity)),
		NewFactor(FactorScope, 0.2, scope,
			fmt.Sprintf("%d files scanned", filesScanned)),
		NewFactor(FactorDensity, 0.4, density,
			fmt.Sprintf("%d matches across %d files", matches, filesScanned)),
	}
	if include != "" {
		out = append(out, NewFactor(FactorFilter, 0.1, 1.0,
			fmt.Sprintf("results limited to %q", include)))
	}
	return out
}
