// Package review applies observed review outcomes to word records: it is the
// per-word state machine between the pure scheduling math in internal/memory
// and the record store.
package review

import (
	"fmt"
	"log"
	"time"

	"github.com/example/vocabbot/internal/memory"
	"github.com/example/vocabbot/pkg/models"
)

// familiarDelay is how long a "familiar" word waits before coming back.
const familiarDelay = 2 * time.Hour

// Tracker applies review outcomes to word records and persists the results.
// The scheduling strategy is fixed at construction, per deployment.
type Tracker struct {
	strategy memory.Strategy
	store    RecordStore
	activity ActivityLog
}

// New creates a tracker using the given strategy, record store and activity log.
func New(strategy memory.Strategy, store RecordStore, activity ActivityLog) *Tracker {
	return &Tracker{strategy: strategy, store: store, activity: activity}
}

// Strategy returns the tracker's scheduling strategy.
func (t *Tracker) Strategy() memory.Strategy {
	return t.strategy
}

// ApplyOutcome applies a coarse review outcome to a record, persists the
// updated record and emits one activity entry. Unknown drops a level and
// makes the word due again immediately; Familiar keeps the level and brings
// the word back in two hours; Known raises the level and schedules the next
// review from the interval table.
//
// Applying the same outcome again with a fresh now advances the record
// further; the call is not idempotent and the caller supplies now.
func (t *Tracker) ApplyOutcome(rec models.WordRecord, outcome models.ReviewOutcome, now time.Time) (models.WordRecord, error) {
	if !outcome.IsValid() {
		return rec, fmt.Errorf("%w: unknown review outcome %q", memory.ErrValidation, outcome)
	}

	var next time.Time
	switch outcome {
	case models.OutcomeUnknown:
		if rec.ProficiencyLevel > 0 {
			rec.ProficiencyLevel--
		}
		next = now
	case models.OutcomeFamiliar:
		next = now.Add(familiarDelay)
	case models.OutcomeKnown:
		if rec.ProficiencyLevel < memory.MaxLevel(t.strategy) {
			rec.ProficiencyLevel++
		}
		next = memory.NextReview(t.strategy, rec.ProficiencyLevel, now)
	}

	if err := memory.CheckLevel(t.strategy, rec.ProficiencyLevel); err != nil {
		return rec, err
	}

	rec.ReviewCount++
	rec.LastReviewAt = &now
	rec.NextReviewAt = &next

	if err := t.store.Update(&rec); err != nil {
		return rec, err
	}
	t.logActivity(activityTypeFor(outcome), rec.ID, outcome.DerivedAccuracy(), 0)
	return rec, nil
}

// ApplyResult applies a continuous review measurement through the adaptive
// formula: proficiency, interval, repetitions and easiness all move per SM-2.
// On a validation error nothing is persisted.
func (t *Tracker) ApplyResult(rec models.WordRecord, result models.ReviewResult, now time.Time) (models.WordRecord, error) {
	state, level, next, err := memory.Advance(rec.MemoryState, rec.ProficiencyLevel, result, now)
	if err != nil {
		return rec, err
	}
	if err := memory.CheckLevel(memory.StrategyAdaptive, level); err != nil {
		return rec, err
	}

	rec.MemoryState = state
	rec.ProficiencyLevel = level
	rec.ReviewCount++
	rec.LastReviewAt = &now
	rec.NextReviewAt = &next

	if err := t.store.Update(&rec); err != nil {
		return rec, err
	}
	t.logActivity(models.ActivityReviewScored, rec.ID, result.AccuracyScore, int(result.ResponseTimeMs/1000))
	return rec, nil
}

// BatchApply applies one result per record inside a single store transaction:
// either every record's write commits or none do. A length mismatch or an
// invalid result fails validation before any write happens.
func (t *Tracker) BatchApply(records []models.WordRecord, results []models.ReviewResult, now time.Time) ([]models.WordRecord, error) {
	if len(records) != len(results) {
		return nil, fmt.Errorf("%w: %d records but %d results", memory.ErrValidation, len(records), len(results))
	}
	for i, result := range results {
		if err := memory.ValidateResult(result); err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
	}

	updated := make([]models.WordRecord, len(records))
	err := t.store.Transaction(func(tx RecordStore) error {
		for i, rec := range records {
			state, level, next, err := memory.Advance(rec.MemoryState, rec.ProficiencyLevel, results[i], now)
			if err != nil {
				return err
			}
			rec.MemoryState = state
			rec.ProficiencyLevel = level
			rec.ReviewCount++
			reviewedAt := now
			rec.LastReviewAt = &reviewedAt
			nextAt := next
			rec.NextReviewAt = &nextAt
			if err := tx.Update(&rec); err != nil {
				return err
			}
			updated[i] = rec
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Log only after the transaction committed.
	for i, rec := range updated {
		t.logActivity(models.ActivityReviewScored, rec.ID, results[i].AccuracyScore, int(results[i].ResponseTimeMs/1000))
	}
	return updated, nil
}

func (t *Tracker) logActivity(activityType, wordID string, accuracy float64, timeSpent int) {
	if t.activity == nil {
		return
	}
	if err := t.activity.Record(activityType, wordID, accuracy, timeSpent); err != nil {
		log.Printf("Failed to record activity for word %s: %v", wordID, err)
	}
}

func activityTypeFor(outcome models.ReviewOutcome) string {
	switch outcome {
	case models.OutcomeKnown:
		return models.ActivityReviewKnown
	case models.OutcomeFamiliar:
		return models.ActivityReviewFamiliar
	default:
		return models.ActivityReviewUnknown
	}
}
