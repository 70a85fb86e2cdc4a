package models

// ReviewOutcome is the coarse result of a single review step, as reported by
// the learner during a session.
type ReviewOutcome string

const (
	// OutcomeUnknown means the word was not recalled at all.
	OutcomeUnknown ReviewOutcome = "unknown"
	// OutcomeFamiliar means the word felt familiar but was not fully recalled.
	OutcomeFamiliar ReviewOutcome = "familiar"
	// OutcomeKnown means the word was recalled correctly.
	OutcomeKnown ReviewOutcome = "known"
)

// IsValid reports whether o is one of the three review outcomes.
func (o ReviewOutcome) IsValid() bool {
	switch o {
	case OutcomeUnknown, OutcomeFamiliar, OutcomeKnown:
		return true
	}
	return false
}

// DerivedAccuracy maps the coarse outcome to an accuracy value for activity
// logging. The scheduler itself never reads this value.
func (o ReviewOutcome) DerivedAccuracy() float64 {
	switch o {
	case OutcomeKnown:
		return 1.0
	case OutcomeFamiliar:
		return 0.7
	default:
		return 0.3
	}
}

// ReviewResult is the continuous measurement of a single review, used by the
// adaptive scheduling strategy. It is an input only and is never persisted.
type ReviewResult struct {
	AccuracyScore        float64 `json:"accuracy_score"`        // 0.0 - 1.0
	ResponseTimeMs       int64   `json:"response_time_ms"`      // >= 0
	SubjectiveDifficulty int     `json:"subjective_difficulty"` // 1-5, 3 is neutral
}
