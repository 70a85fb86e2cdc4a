// Package memory computes review schedules and mastery trajectories for
// vocabulary words. It supports two interchangeable strategies: a fixed
// interval table and an adaptive SM-2 style formula. All functions are pure;
// persistence stays with the caller.
package memory

import (
	"fmt"
	"time"
)

// Strategy selects how next-review dates are computed. The strategy is chosen
// once per deployment, never per record.
type Strategy string

const (
	// StrategyFixed schedules reviews from a static level-to-days table.
	StrategyFixed Strategy = "fixed"
	// StrategyAdaptive schedules reviews with the SM-2 style formula.
	StrategyAdaptive Strategy = "adaptive"
)

// IsValid reports whether s is a known strategy.
func (s Strategy) IsValid() bool {
	return s == StrategyFixed || s == StrategyAdaptive
}

// fixedIntervals maps proficiency level to the day offset of the next review.
// Levels beyond the table reuse the last entry.
var fixedIntervals = [...]int{0, 1, 3, 7, 15, 30}

const (
	maxLevelFixed    = 5
	maxLevelAdaptive = 9
)

// MaxLevel returns the proficiency ceiling for the strategy: 5 for the fixed
// table, 9 for the adaptive formula.
func MaxLevel(s Strategy) int {
	if s == StrategyAdaptive {
		return maxLevelAdaptive
	}
	return maxLevelFixed
}

// IntervalDays returns the fixed-table day offset for a level. Negative levels
// clamp to the first entry.
func IntervalDays(level int) int {
	if level < 0 {
		level = 0
	}
	if level >= len(fixedIntervals) {
		level = len(fixedIntervals) - 1
	}
	return fixedIntervals[level]
}

// NextReview computes the next review date for a proficiency level. Both
// strategies use the interval table on the discrete path; the adaptive formula
// applies only when a full ReviewResult is available (see Advance).
func NextReview(s Strategy, level int, now time.Time) time.Time {
	return now.AddDate(0, 0, IntervalDays(level))
}

// CheckLevel verifies that a proficiency level is inside the strategy's range.
// A failure means a transition was computed incorrectly upstream.
func CheckLevel(s Strategy, level int) error {
	if level < 0 || level > MaxLevel(s) {
		return fmt.Errorf("%w: proficiency level %d outside [0, %d]", ErrInvariant, level, MaxLevel(s))
	}
	return nil
}
