package models

import "time"

// AddReason records why a word ended up in the learner's deck.
type AddReason string

const (
	// AddReasonLookupTranslation means the learner looked the word up in a dictionary.
	AddReasonLookupTranslation AddReason = "lookup_translation"
	// AddReasonPronunciationError means the word was added after a pronunciation mistake.
	AddReasonPronunciationError AddReason = "pronunciation_error"
	// AddReasonListeningDifficulty means the word was not recognized by ear.
	AddReasonListeningDifficulty AddReason = "listening_difficulty"
)

// IsValid reports whether r is one of the known add reasons.
func (r AddReason) IsValid() bool {
	switch r {
	case AddReasonLookupTranslation, AddReasonPronunciationError, AddReasonListeningDifficulty:
		return true
	}
	return false
}

// DefaultEasinessFactor is the starting easiness factor for a new word.
const DefaultEasinessFactor = 2.5

// MemoryState holds the adaptive-strategy scheduling parameters for a word.
// The easiness factor never falls below 1.3; repetitions reset to zero on a
// failed review.
type MemoryState struct {
	EasinessFactor float64 `json:"easiness_factor" db:"easiness_factor"`
	Interval       int     `json:"interval" db:"interval"`       // current interval in days
	Repetitions    int     `json:"repetitions" db:"repetitions"` // consecutive successful reviews
}

// NewMemoryState returns the state of a word that has never been reviewed.
func NewMemoryState() MemoryState {
	return MemoryState{EasinessFactor: DefaultEasinessFactor}
}

// WordRecord represents a vocabulary item and its review state.
// LastReviewAt is nil before the first review; a nil NextReviewAt means the
// word is due immediately.
type WordRecord struct {
	ID               string    `json:"id" db:"id"`
	Text             string    `json:"text" db:"word"`
	Definition       string    `json:"definition" db:"definition"`
	Pronunciation    string    `json:"pronunciation" db:"pronunciation"`
	AddReason        AddReason `json:"add_reason" db:"add_reason"`
	ProficiencyLevel int       `json:"proficiency_level" db:"proficiency_level"`
	ReviewCount      int       `json:"review_count" db:"review_count"`
	MemoryState
	LastReviewAt *time.Time `json:"last_review_at" db:"last_review_at"`
	NextReviewAt *time.Time `json:"next_review_at" db:"next_review_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// NewWordRecord creates a fresh record at level zero, due immediately.
func NewWordRecord(id, text, definition, pronunciation string, reason AddReason, now time.Time) WordRecord {
	return WordRecord{
		ID:            id,
		Text:          text,
		Definition:    definition,
		Pronunciation: pronunciation,
		AddReason:     reason,
		MemoryState:   NewMemoryState(),
		CreatedAt:     now,
	}
}
