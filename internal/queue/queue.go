// Package queue orders vocabulary words for review. It operates over a
// snapshot of records supplied by the caller and never touches storage.
package queue

import (
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/example/vocabbot/internal/memory"
	"github.com/example/vocabbot/pkg/models"
)

const hoursPerDay = 24

// IsDue reports whether a record is due at the given moment. A record with no
// scheduled review is due immediately.
func IsDue(rec models.WordRecord, now time.Time) bool {
	return rec.NextReviewAt == nil || !rec.NextReviewAt.After(now)
}

// PriorityOf scores a record for the due queue. More overdue words score
// higher, and among equally overdue words the lower proficiency levels win.
func PriorityOf(strategy memory.Strategy, rec models.WordRecord, now time.Time) float64 {
	var overdueDays float64
	if rec.NextReviewAt != nil {
		if d := now.Sub(*rec.NextReviewAt).Hours() / hoursPerDay; d > 0 {
			overdueDays = d
		}
	}
	return overdueDays + float64(memory.MaxLevel(strategy)-rec.ProficiencyLevel)*0.1
}

// Priorities scores a batch of records. Scoring is independent per record, so
// large decks are split across the available CPUs.
func Priorities(strategy memory.Strategy, records []models.WordRecord, now time.Time) []float64 {
	scores := make([]float64, len(records))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range records {
		i := i
		g.Go(func() error {
			scores[i] = PriorityOf(strategy, records[i], now)
			return nil
		})
	}
	g.Wait() // workers never return errors
	return scores
}

// DueSet filters the records due at the given moment, preserving input order.
func DueSet(records []models.WordRecord, now time.Time) []models.WordRecord {
	var due []models.WordRecord
	for _, rec := range records {
		if IsDue(rec, now) {
			due = append(due, rec)
		}
	}
	return due
}

// BuildDueQueue returns the records due now, ordered for presentation:
// descending priority score, then ascending proficiency, then ascending last
// review date with never-reviewed words first. The sort is stable, so records
// equal on every key keep their input order.
func BuildDueQueue(strategy memory.Strategy, records []models.WordRecord, now time.Time) []models.WordRecord {
	due := DueSet(records, now)
	scores := Priorities(strategy, due, now)

	// Sort indices so the precomputed scores move with their records.
	idx := make([]int, len(due))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		i, j := idx[a], idx[b]
		if scores[i] != scores[j] {
			return scores[i] > scores[j]
		}
		if due[i].ProficiencyLevel != due[j].ProficiencyLevel {
			return due[i].ProficiencyLevel < due[j].ProficiencyLevel
		}
		return timePtrBefore(due[i].LastReviewAt, due[j].LastReviewAt)
	})

	out := make([]models.WordRecord, len(due))
	for a, i := range idx {
		out[a] = due[i]
	}
	return out
}

// BuildTodayQueue returns the records scheduled up to one day ahead, ordered
// by ascending next review date with unscheduled words first, then ascending
// proficiency, then ascending creation date. This ordering is intentionally
// different from the due queue's and the two must not be unified: collapsing
// them changes the observable review order.
func BuildTodayQueue(records []models.WordRecord, now time.Time) []models.WordRecord {
	cutoff := now.AddDate(0, 0, 1)
	var today []models.WordRecord
	for _, rec := range records {
		if rec.NextReviewAt == nil || rec.NextReviewAt.Before(cutoff) {
			today = append(today, rec)
		}
	}

	sort.SliceStable(today, func(i, j int) bool {
		a, b := today[i], today[j]
		if !timePtrEqual(a.NextReviewAt, b.NextReviewAt) {
			return timePtrBefore(a.NextReviewAt, b.NextReviewAt)
		}
		if a.ProficiencyLevel != b.ProficiencyLevel {
			return a.ProficiencyLevel < b.ProficiencyLevel
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return today
}

// timePtrBefore orders optional timestamps with nil first.
func timePtrBefore(a, b *time.Time) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.Before(*b)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
