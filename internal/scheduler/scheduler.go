package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/vocabbot/internal/memory"
	"github.com/example/vocabbot/internal/queue"
	"github.com/example/vocabbot/internal/review"
	"github.com/example/vocabbot/pkg/models"
)

// Default notification settings
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
	DefaultWordsPerReminder      = 10
)

// Notifier interface for sending review reminders
type Notifier interface {
	SendDueReminder(words []models.WordRecord) error
}

// Scheduler runs the periodic due-word check and pushes reminders.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     review.RecordStore
	strategy  memory.Strategy
	notifier  Notifier
}

// New creates a new scheduler instance
func New(strategy memory.Strategy, store review.RecordStore, notifier Notifier) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     store,
		strategy:  strategy,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Schedule hourly check for due words
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder)

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminder scans for due words and sends a reminder when the
// current hour is inside the notification window.
func (s *Scheduler) checkAndSendReminder() {
	currentHour := time.Now().Hour()
	startHour := envHour("NOTIFICATION_START_HOUR", DefaultNotificationStartHour)
	endHour := envHour("NOTIFICATION_END_HOUR", DefaultNotificationEndHour)

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminder",
			currentHour, startHour, endHour)
		return
	}

	if err := s.RunManualCheck(); err != nil {
		log.Printf("Error sending due reminder: %v", err)
	}
}

// RunManualCheck forces a due-word check and reminder right now.
func (s *Scheduler) RunManualCheck() error {
	now := time.Now()
	records, err := s.store.ListDue(now)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	// Don't push more than the reminder preference; the queue builder
	// decides which words make the cut.
	ordered := queue.BuildDueQueue(s.strategy, records, now)
	limit := envPositiveInt("WORDS_PER_REMINDER", DefaultWordsPerReminder)
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return s.notifier.SendDueReminder(ordered)
}

// envHour reads an hour-of-day variable, ignoring out-of-range values.
func envHour(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}

func envPositiveInt(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
