// Package duration parses the retention ages accepted by "seek history
// prune --older-than".
//
// Ages are written as "12h" (hours), "7d" (days), "4w" (weeks) or "3m"
// (months of 30 days) rather than Go's time.Duration format, which has no
// unit longer than an hour.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const day = 24 * time.Hour

var ageRe = regexp.MustCompile(`^(\d+)([hdwm])$`)

// Parse parses an age such as "7d". Zero is rejected: pruning everything
// should be asked for explicitly with a small non-zero age.
func Parse(s string) (time.Duration, error) {
	m := ageRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid duration format: %s (use 12h, 7d, 4w, or 3m)", s)
	}

	num, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}
	if num == 0 {
		return 0, fmt.Errorf("invalid duration: %s must be greater than zero", s)
	}

	switch m[2] {
	case "h":
		return time.Duration(num) * time.Hour, nil
	case "d":
		return time.Duration(num) * day, nil
	case "w":
		return time.Duration(num) * 7 * day, nil
	default: // "m"
		return time.Duration(num) * 30 * day, nil
	}
}

// Cutoff returns the instant that is age before now.
func Cutoff(now time.Time, age time.Duration) time.Time {
	return now.Add(-age)
}
