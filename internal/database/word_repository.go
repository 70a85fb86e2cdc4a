package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabbot/internal/review"
	"github.com/example/vocabbot/pkg/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("database: record not found")

// WordRepository handles database operations for word records. The zero
// repository runs against the global connection; Transaction hands out
// tx-scoped copies.
type WordRepository struct {
	ext sqlx.Ext
}

// Compile-time interface check.
var _ review.RecordStore = (*WordRepository)(nil)

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

func (r *WordRepository) db() sqlx.Ext {
	if r.ext != nil {
		return r.ext
	}
	return DB
}

// GetByID returns a word record by its ID.
func (r *WordRepository) GetByID(id string) (*models.WordRecord, error) {
	var rec models.WordRecord
	err := sqlx.Get(r.db(), &rec, "SELECT * FROM words WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: word %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by ID: %v", err)
	}
	return &rec, nil
}

// GetByText returns a word record by its text.
func (r *WordRepository) GetByText(text string) (*models.WordRecord, error) {
	var rec models.WordRecord
	err := sqlx.Get(r.db(), &rec, "SELECT * FROM words WHERE word = $1", text)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: word %q", ErrNotFound, text)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by text: %v", err)
	}
	return &rec, nil
}

// GetAll returns every word record.
func (r *WordRepository) GetAll() ([]models.WordRecord, error) {
	var records []models.WordRecord
	err := sqlx.Select(r.db(), &records, "SELECT * FROM words ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to get words: %v", err)
	}
	return records, nil
}

// ListDue returns the records due at the given moment. Records that were
// never scheduled count as due. Ordering for presentation is the queue
// builder's job; this scan only keeps a deterministic base order.
func (r *WordRepository) ListDue(now time.Time) ([]models.WordRecord, error) {
	var records []models.WordRecord
	err := sqlx.Select(r.db(), &records, `
		SELECT * FROM words
		WHERE next_review_at IS NULL OR next_review_at <= $1
		ORDER BY created_at
	`, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get due words: %v", err)
	}
	return records, nil
}

// Create inserts a new word record.
func (r *WordRepository) Create(rec *models.WordRecord) error {
	_, err := r.db().Exec(`
		INSERT INTO words (
			id, word, definition, pronunciation, add_reason,
			proficiency_level, review_count, easiness_factor, interval, repetitions,
			last_review_at, next_review_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		rec.ID,
		rec.Text,
		rec.Definition,
		rec.Pronunciation,
		rec.AddReason,
		rec.ProficiencyLevel,
		rec.ReviewCount,
		rec.EasinessFactor,
		rec.Interval,
		rec.Repetitions,
		rec.LastReviewAt,
		rec.NextReviewAt,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create word: %v", err)
	}
	return nil
}

// Update writes a record's mutable review state. Returns ErrNotFound when the
// id does not exist.
func (r *WordRepository) Update(rec *models.WordRecord) error {
	result, err := r.db().Exec(`
		UPDATE words SET
			definition = $1,
			pronunciation = $2,
			proficiency_level = $3,
			review_count = $4,
			easiness_factor = $5,
			interval = $6,
			repetitions = $7,
			last_review_at = $8,
			next_review_at = $9
		WHERE id = $10
	`,
		rec.Definition,
		rec.Pronunciation,
		rec.ProficiencyLevel,
		rec.ReviewCount,
		rec.EasinessFactor,
		rec.Interval,
		rec.Repetitions,
		rec.LastReviewAt,
		rec.NextReviewAt,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update word: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update word: %v", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: word %s", ErrNotFound, rec.ID)
	}
	return nil
}

// Transaction runs fn against a tx-scoped repository with all-or-nothing
// commit semantics. An error from fn rolls everything back.
func (r *WordRepository) Transaction(fn func(review.RecordStore) error) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	if err := fn(&WordRepository{ext: tx}); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}
	return nil
}

// Stats returns aggregate progress numbers over the whole deck. A word counts
// as mastered once it reaches the strategy's level ceiling.
func (r *WordRepository) Stats(now time.Time, maxLevel int) (*models.ProgressStats, error) {
	stats := &models.ProgressStats{}

	err := sqlx.Get(r.db(), &stats.TotalWords, "SELECT COUNT(*) FROM words")
	if err != nil {
		return nil, fmt.Errorf("failed to count words: %v", err)
	}

	err = sqlx.Get(r.db(), &stats.DueToday, `
		SELECT COUNT(*) FROM words
		WHERE next_review_at IS NULL OR next_review_at <= $1
	`, now.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to count due words: %v", err)
	}

	err = sqlx.Get(r.db(), &stats.Mastered,
		"SELECT COUNT(*) FROM words WHERE proficiency_level >= $1", maxLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to count mastered words: %v", err)
	}

	err = sqlx.Get(r.db(), &stats.AvgEasiness,
		"SELECT COALESCE(AVG(easiness_factor), 2.5) FROM words")
	if err != nil {
		return nil, fmt.Errorf("failed to average easiness factor: %v", err)
	}

	return stats, nil
}
