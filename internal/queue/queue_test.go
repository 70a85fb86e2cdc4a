package queue

import (
	"math"
	"testing"
	"time"

	"github.com/example/vocabbot/internal/memory"
	"github.com/example/vocabbot/pkg/models"
)

var now = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func record(id string, level int, next *time.Time) models.WordRecord {
	return models.WordRecord{
		ID:               id,
		Text:             id,
		ProficiencyLevel: level,
		NextReviewAt:     next,
		CreatedAt:        now.AddDate(0, 0, -30),
	}
}

func ids(records []models.WordRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func assertOrder(t *testing.T, got []models.WordRecord, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d records %v, want %d %v", len(got), ids(got), len(want), want)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: got %v, want %v", i, ids(got), want)
		}
	}
}

func TestIsDue(t *testing.T) {
	if !IsDue(record("a", 0, nil), now) {
		t.Error("record with no schedule should be due immediately")
	}
	if !IsDue(record("b", 0, timePtr(now)), now) {
		t.Error("record due exactly now should be due")
	}
	if !IsDue(record("c", 0, timePtr(now.Add(-time.Hour))), now) {
		t.Error("overdue record should be due")
	}
	if IsDue(record("d", 0, timePtr(now.Add(time.Hour))), now) {
		t.Error("record due in an hour should not be due")
	}
}

func TestPriorityOf(t *testing.T) {
	// Five days overdue at level 1, fixed strategy: 5 + (5-1)*0.1.
	rec := record("a", 1, timePtr(now.AddDate(0, 0, -5)))
	got := PriorityOf(memory.StrategyFixed, rec, now)
	if math.Abs(got-5.4) > 1e-9 {
		t.Errorf("priority = %.4f, want 5.4", got)
	}

	// No schedule counts as zero overdue days.
	fresh := record("b", 0, nil)
	if got := PriorityOf(memory.StrategyFixed, fresh, now); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("priority of unscheduled = %.4f, want 0.5", got)
	}

	// Future due dates never contribute negative overdue time.
	future := record("c", 5, timePtr(now.AddDate(0, 0, 3)))
	if got := PriorityOf(memory.StrategyFixed, future, now); got != 0 {
		t.Errorf("priority of future record = %.4f, want 0", got)
	}
}

func TestBuildDueQueueOverdueBeatsLevel(t *testing.T) {
	a := record("a", 1, timePtr(now.AddDate(0, 0, -5)))
	b := record("b", 4, timePtr(now.AddDate(0, 0, -1)))
	got := BuildDueQueue(memory.StrategyFixed, []models.WordRecord{b, a}, now)
	assertOrder(t, got, "a", "b")
}

func TestBuildDueQueueFiltersFuture(t *testing.T) {
	due := record("due", 2, timePtr(now.Add(-time.Minute)))
	future := record("future", 2, timePtr(now.Add(time.Minute)))
	got := BuildDueQueue(memory.StrategyFixed, []models.WordRecord{future, due}, now)
	assertOrder(t, got, "due")
}

func TestBuildDueQueueTieBreaks(t *testing.T) {
	// lo at level 1 overdue 2 days scores 2.4; hi at level 4 overdue 2.3 days
	// scores the same 2.4 up to float rounding. Whether the scores land equal
	// or a hair apart, lo must come first: by score or by the level tie-break.
	lo := record("lo", 1, timePtr(now.AddDate(0, 0, -2)))
	hi := record("hi", 4, timePtr(now.Add(-time.Duration(2.3*24*float64(time.Hour)))))
	got := BuildDueQueue(memory.StrategyFixed, []models.WordRecord{hi, lo}, now)
	assertOrder(t, got, "lo", "hi")

	// Same score and level: earlier last review first.
	next := timePtr(now.AddDate(0, 0, -2))
	older := record("older", 1, next)
	older.LastReviewAt = timePtr(now.AddDate(0, 0, -10))
	newer := record("newer", 1, next)
	newer.LastReviewAt = timePtr(now.AddDate(0, 0, -3))
	got = BuildDueQueue(memory.StrategyFixed, []models.WordRecord{newer, older}, now)
	assertOrder(t, got, "older", "newer")

	// Never reviewed sorts before any reviewed record.
	virgin := record("virgin", 1, next)
	got = BuildDueQueue(memory.StrategyFixed, []models.WordRecord{older, virgin}, now)
	assertOrder(t, got, "virgin", "older")
}

func TestBuildDueQueueStable(t *testing.T) {
	next := timePtr(now.AddDate(0, 0, -1))
	last := timePtr(now.AddDate(0, 0, -2))
	var in []models.WordRecord
	for _, id := range []string{"w1", "w2", "w3", "w4"} {
		r := record(id, 2, next)
		r.LastReviewAt = last
		in = append(in, r)
	}
	got := BuildDueQueue(memory.StrategyFixed, in, now)
	assertOrder(t, got, "w1", "w2", "w3", "w4")
}

func TestBuildTodayQueueOrdering(t *testing.T) {
	soon := record("soon", 3, timePtr(now.Add(2*time.Hour)))
	later := record("later", 1, timePtr(now.Add(20*time.Hour)))
	unset := record("unset", 4, nil)
	nextWeek := record("next_week", 0, timePtr(now.AddDate(0, 0, 7)))

	got := BuildTodayQueue([]models.WordRecord{later, nextWeek, soon, unset}, now)
	assertOrder(t, got, "unset", "soon", "later")
}

func TestBuildTodayQueueTieBreaks(t *testing.T) {
	next := timePtr(now.Add(3 * time.Hour))

	// Same review time: lower proficiency first.
	a := record("a", 4, next)
	b := record("b", 1, next)
	got := BuildTodayQueue([]models.WordRecord{a, b}, now)
	assertOrder(t, got, "b", "a")

	// Same review time and level: older record first.
	old := record("old", 2, next)
	old.CreatedAt = now.AddDate(0, 0, -60)
	young := record("young", 2, next)
	got = BuildTodayQueue([]models.WordRecord{young, old}, now)
	assertOrder(t, got, "old", "young")
}

// The two orderings are intentionally different: the due queue leads with the
// most overdue word, the today queue with the earliest scheduled one.
func TestDueAndTodayQueuesDisagree(t *testing.T) {
	// a: level 5, 24h overdue -> priority 1.0. b: level 0, 12h overdue ->
	// priority 0.5 + 0.5 = 1.0. The due queue leads with b (equal-or-higher
	// score, lower level); the today queue orders by next review date and
	// leads with a.
	a := record("a", 5, timePtr(now.Add(-24*time.Hour)))
	b := record("b", 0, timePtr(now.Add(-12*time.Hour)))

	due := BuildDueQueue(memory.StrategyFixed, []models.WordRecord{a, b}, now)
	today := BuildTodayQueue([]models.WordRecord{a, b}, now)
	assertOrder(t, due, "b", "a")
	assertOrder(t, today, "a", "b")
}

func TestPrioritiesMatchesPriorityOf(t *testing.T) {
	var in []models.WordRecord
	for i := 0; i < 100; i++ {
		r := record("w", i%6, timePtr(now.AddDate(0, 0, -i)))
		in = append(in, r)
	}
	scores := Priorities(memory.StrategyFixed, in, now)
	for i, rec := range in {
		want := PriorityOf(memory.StrategyFixed, rec, now)
		if scores[i] != want {
			t.Fatalf("scores[%d] = %f, want %f", i, scores[i], want)
		}
	}
}
