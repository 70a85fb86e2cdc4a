package models

import "time"

// Activity types recorded for each applied review.
const (
	ActivityReviewUnknown  = "review_unknown"
	ActivityReviewFamiliar = "review_familiar"
	ActivityReviewKnown    = "review_known"
	ActivityReviewScored   = "review_scored"
)

// ActivityEntry is one row of the review activity log.
type ActivityEntry struct {
	ID               int64     `json:"id" db:"id"`
	ActivityType     string    `json:"activity_type" db:"activity_type"`
	WordID           string    `json:"word_id" db:"word_id"`
	AccuracyScore    float64   `json:"accuracy_score" db:"accuracy_score"`
	TimeSpentSeconds int       `json:"time_spent_seconds" db:"time_spent_seconds"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// ProgressStats aggregates the learner's overall progress.
type ProgressStats struct {
	TotalWords    int     `json:"total_words" db:"total_words"`
	DueToday      int     `json:"due_today" db:"due_today"`
	Mastered      int     `json:"mastered" db:"mastered"`
	AvgEasiness   float64 `json:"avg_easiness_factor" db:"avg_easiness_factor"`
	ReviewsToday  int     `json:"reviews_today" db:"reviews_today"`
	AccuracyToday float64 `json:"accuracy_today" db:"accuracy_today"`
}
