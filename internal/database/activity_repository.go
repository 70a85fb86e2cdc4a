package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabbot/internal/review"
)

// ActivityRepository appends review events to the activity log. The log is
// write-only from the scheduler's perspective; the aggregates below exist for
// the stats display.
type ActivityRepository struct{}

// Compile-time interface check.
var _ review.ActivityLog = (*ActivityRepository)(nil)

// NewActivityRepository creates a new repository instance
func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

// Record appends one activity entry.
func (r *ActivityRepository) Record(activityType, wordID string, accuracy float64, timeSpentSeconds int) error {
	_, err := DB.Exec(`
		INSERT INTO activity_log (activity_type, word_id, accuracy_score, time_spent_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, activityType, wordID, accuracy, timeSpentSeconds, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record activity: %v", err)
	}
	return nil
}

// TodayStats returns the number of reviews since local midnight and their
// average logged accuracy.
func (r *ActivityRepository) TodayStats(now time.Time) (int, float64, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int
	err := sqlx.Get(DB, &count,
		"SELECT COUNT(*) FROM activity_log WHERE created_at >= $1", dayStart)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count today's reviews: %v", err)
	}

	var avg float64
	err = sqlx.Get(DB, &avg,
		"SELECT COALESCE(AVG(accuracy_score), 0) FROM activity_log WHERE created_at >= $1", dayStart)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to average today's accuracy: %v", err)
	}

	return count, avg, nil
}
