package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/example/vocabbot/internal/memory"
	"github.com/example/vocabbot/internal/review"
	"github.com/example/vocabbot/pkg/models"
)

type stubStore struct {
	due []models.WordRecord
	err error
}

func (s *stubStore) GetByID(string) (*models.WordRecord, error)       { return nil, nil }
func (s *stubStore) GetByText(string) (*models.WordRecord, error)     { return nil, nil }
func (s *stubStore) Update(*models.WordRecord) error                  { return nil }
func (s *stubStore) Transaction(func(review.RecordStore) error) error { return nil }

func (s *stubStore) ListDue(time.Time) ([]models.WordRecord, error) {
	return s.due, s.err
}

type stubNotifier struct {
	sent [][]models.WordRecord
}

func (n *stubNotifier) SendDueReminder(words []models.WordRecord) error {
	n.sent = append(n.sent, words)
	return nil
}

func dueWord(id string, level int, overdueDays int) models.WordRecord {
	next := time.Now().AddDate(0, 0, -overdueDays)
	return models.WordRecord{ID: id, Text: id, ProficiencyLevel: level, NextReviewAt: &next}
}

func TestRunManualCheckSendsOrderedReminder(t *testing.T) {
	store := &stubStore{due: []models.WordRecord{
		dueWord("mild", 4, 1),
		dueWord("urgent", 1, 5),
	}}
	notifier := &stubNotifier{}
	s := New(memory.StrategyFixed, store, notifier)

	if err := s.RunManualCheck(); err != nil {
		t.Fatal(err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("sent %d reminders, want 1", len(notifier.sent))
	}
	got := notifier.sent[0]
	if len(got) != 2 || got[0].ID != "urgent" || got[1].ID != "mild" {
		t.Errorf("reminder order wrong: %v", got)
	}
}

func TestRunManualCheckSkipsWhenNothingDue(t *testing.T) {
	notifier := &stubNotifier{}
	s := New(memory.StrategyFixed, &stubStore{}, notifier)
	if err := s.RunManualCheck(); err != nil {
		t.Fatal(err)
	}
	if len(notifier.sent) != 0 {
		t.Error("reminder sent with an empty due set")
	}
}

func TestRunManualCheckLimitsReminderSize(t *testing.T) {
	store := &stubStore{}
	for i := 0; i < 25; i++ {
		store.due = append(store.due, dueWord("w", i%6, i+1))
	}
	notifier := &stubNotifier{}
	s := New(memory.StrategyFixed, store, notifier)

	if err := s.RunManualCheck(); err != nil {
		t.Fatal(err)
	}
	if got := len(notifier.sent[0]); got != DefaultWordsPerReminder {
		t.Errorf("reminder carries %d words, want %d", got, DefaultWordsPerReminder)
	}
}

func TestRunManualCheckPropagatesStoreError(t *testing.T) {
	broken := errors.New("db down")
	s := New(memory.StrategyFixed, &stubStore{err: broken}, &stubNotifier{})
	if err := s.RunManualCheck(); !errors.Is(err, broken) {
		t.Errorf("got %v, want the store's error", err)
	}
}
