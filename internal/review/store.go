package review

import (
	"time"

	"github.com/example/vocabbot/pkg/models"
)

// RecordStore is the durable storage the tracker writes updated records
// through. Storage errors (including not-found) pass through the tracker
// unchanged.
type RecordStore interface {
	GetByID(id string) (*models.WordRecord, error)
	GetByText(text string) (*models.WordRecord, error)
	ListDue(now time.Time) ([]models.WordRecord, error)
	Update(rec *models.WordRecord) error
	// Transaction runs fn against a transaction-scoped store with
	// all-or-nothing commit semantics.
	Transaction(fn func(RecordStore) error) error
}

// ActivityLog receives one entry per applied review. Fire-and-forget: the
// tracker logs failures and moves on.
type ActivityLog interface {
	Record(activityType, wordID string, accuracy float64, timeSpentSeconds int) error
}
