package bot

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/example/vocabbot/internal/memory"
	"github.com/example/vocabbot/internal/queue"
	"github.com/example/vocabbot/pkg/models"
)

// HandleCommand routes a slash command to its handler.
func (b *Bot) HandleCommand(message *tgbotapi.Message) error {
	switch message.Command() {
	case "start":
		return b.handleStart(message)
	case "help":
		return b.handleHelp(message)
	case "review":
		return b.handleReview(message)
	case "today":
		return b.handleToday(message)
	case "stats":
		return b.handleStats(message)
	case "add":
		return b.handleAdd(message)
	default:
		return b.sendText(message.Chat.ID, "Unknown command. Use /help to see what I can do.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) error {
	text := "👋 I help you remember vocabulary with spaced repetition.\n\n" +
		"Add words with /add, then review them with /review whenever they come due. " +
		"I'll space the reviews further apart as you get better at each word."
	return b.sendText(message.Chat.ID, text)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) error {
	text := "Commands:\n" +
		"/review — review the words that are due now\n" +
		"/today — see everything scheduled for today\n" +
		"/add word - definition — add a new word\n" +
		"/stats — your progress\n" +
		"/help — this message"
	return b.sendText(message.Chat.ID, text)
}

// handleReview starts a review session over the due queue.
func (b *Bot) handleReview(message *tgbotapi.Message) error {
	now := time.Now()
	records, err := b.words.ListDue(now)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return b.sendText(message.Chat.ID, "🎉 Nothing is due right now. Come back later!")
	}

	ordered := queue.BuildDueQueue(b.tracker.Strategy(), records, now)
	if len(ordered) > b.config.WordsPerSession {
		ordered = ordered[:b.config.WordsPerSession]
	}

	b.sessions[message.Chat.ID] = &reviewSession{Queue: ordered, StartedAt: now}
	return b.sendCard(message.Chat.ID)
}

// sendCard presents the session's current word with its answer hidden.
func (b *Bot) sendCard(chatID int64) error {
	session, ok := b.session(chatID)
	if !ok {
		return nil
	}
	if session.Index >= len(session.Queue) {
		delete(b.sessions, chatID)
		return b.sendText(chatID, fmt.Sprintf("Session done — %d word(s) reviewed. 💪", len(session.Queue)))
	}

	rec := session.Queue[session.Index]
	text := fmt.Sprintf("(%d/%d) %s", session.Index+1, len(session.Queue), rec.Text)
	if rec.Pronunciation != "" {
		text += fmt.Sprintf("\n[%s]", rec.Pronunciation)
	}

	keyboard := createKeyboard([][]MenuButton{
		{{Text: "Show answer", CallbackData: "reveal:" + rec.ID}},
	})
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	_, err := b.api.Send(msg)
	return err
}

// HandleCallback routes an inline-button press.
func (b *Bot) HandleCallback(callback *tgbotapi.CallbackQuery) error {
	// Acknowledge the button press so the client stops spinning
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		return err
	}

	parts := strings.Split(callback.Data, ":")
	switch parts[0] {
	case "reveal":
		if len(parts) != 2 {
			return nil
		}
		return b.handleReveal(callback, parts[1])
	case "outcome":
		if len(parts) != 3 {
			return nil
		}
		return b.handleOutcome(callback, models.ReviewOutcome(parts[1]), parts[2])
	}
	return nil
}

// handleReveal shows the definition and the three outcome buttons.
func (b *Bot) handleReveal(callback *tgbotapi.CallbackQuery, wordID string) error {
	chatID := callback.Message.Chat.ID
	session, ok := b.session(chatID)
	if !ok || session.Index >= len(session.Queue) || session.Queue[session.Index].ID != wordID {
		return b.sendText(chatID, "That session has expired. Start a new one with /review.")
	}

	rec := session.Queue[session.Index]
	text := fmt.Sprintf("(%d/%d) %s", session.Index+1, len(session.Queue), rec.Text)
	if rec.Pronunciation != "" {
		text += fmt.Sprintf("\n[%s]", rec.Pronunciation)
	}
	text += "\n\n" + rec.Definition

	keyboard := createKeyboard([][]MenuButton{{
		{Text: "❌ Unknown", CallbackData: "outcome:unknown:" + rec.ID},
		{Text: "🤔 Familiar", CallbackData: "outcome:familiar:" + rec.ID},
		{Text: "✅ Known", CallbackData: "outcome:known:" + rec.ID},
	}})
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, callback.Message.MessageID, text, keyboard)
	_, err := b.api.Send(edit)
	return err
}

// handleOutcome applies the learner's answer and moves the session forward.
func (b *Bot) handleOutcome(callback *tgbotapi.CallbackQuery, outcome models.ReviewOutcome, wordID string) error {
	chatID := callback.Message.Chat.ID
	session, ok := b.session(chatID)
	if !ok || session.Index >= len(session.Queue) || session.Queue[session.Index].ID != wordID {
		return b.sendText(chatID, "That session has expired. Start a new one with /review.")
	}

	updated, err := b.tracker.ApplyOutcome(session.Queue[session.Index], outcome, time.Now())
	if err != nil {
		return err
	}

	// Freeze the answered card without buttons
	summary := fmt.Sprintf("%s — %s (level %d, next %s)",
		updated.Text, outcome, updated.ProficiencyLevel, formatNext(updated.NextReviewAt))
	edit := tgbotapi.NewEditMessageText(chatID, callback.Message.MessageID, summary)
	if _, err := b.api.Send(edit); err != nil {
		return err
	}

	session.Index++
	return b.sendCard(chatID)
}

// handleToday lists everything scheduled up to a day ahead.
func (b *Bot) handleToday(message *tgbotapi.Message) error {
	now := time.Now()
	records, err := b.words.GetAll()
	if err != nil {
		return err
	}

	today := queue.BuildTodayQueue(records, now)
	if len(today) == 0 {
		return b.sendText(message.Chat.ID, "Nothing scheduled for today.")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 %d word(s) on today's plate:\n", len(today)))
	for i, rec := range today {
		if i >= 20 {
			sb.WriteString(fmt.Sprintf("…and %d more\n", len(today)-i))
			break
		}
		sb.WriteString(fmt.Sprintf("• %s (level %d, %s)\n", rec.Text, rec.ProficiencyLevel, formatNext(rec.NextReviewAt)))
	}
	return b.sendText(message.Chat.ID, sb.String())
}

func (b *Bot) handleStats(message *tgbotapi.Message) error {
	now := time.Now()
	stats, err := b.words.Stats(now, memory.MaxLevel(b.tracker.Strategy()))
	if err != nil {
		return err
	}
	reviews, accuracy, err := b.activity.TodayStats(now)
	if err != nil {
		return err
	}

	text := fmt.Sprintf(
		"📊 Your progress:\n"+
			"Words in deck: %d\n"+
			"Due today: %d\n"+
			"Mastered: %d\n"+
			"Average easiness: %.2f\n"+
			"Reviews today: %d (accuracy %.0f%%)",
		stats.TotalWords, stats.DueToday, stats.Mastered, stats.AvgEasiness,
		reviews, accuracy*100)
	return b.sendText(message.Chat.ID, text)
}

// handleAdd creates a word from "/add word - definition".
func (b *Bot) handleAdd(message *tgbotapi.Message) error {
	args := message.CommandArguments()
	parts := strings.SplitN(args, " - ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return b.sendText(message.Chat.ID, "Usage: /add word - definition")
	}
	text := strings.TrimSpace(parts[0])
	definition := strings.TrimSpace(parts[1])

	if existing, err := b.words.GetByText(text); err == nil {
		return b.sendText(message.Chat.ID,
			fmt.Sprintf("%q is already in your deck (level %d).", existing.Text, existing.ProficiencyLevel))
	}

	rec := models.NewWordRecord(uuid.NewString(), text, definition, "", models.AddReasonLookupTranslation, time.Now())
	if err := b.words.Create(&rec); err != nil {
		return err
	}
	return b.sendText(message.Chat.ID, fmt.Sprintf("Added %q. It will show up in your next /review.", text))
}

func formatNext(next *time.Time) string {
	if next == nil {
		return "due now"
	}
	until := time.Until(*next)
	if until <= 0 {
		return "due now"
	}
	if until < 24*time.Hour {
		return fmt.Sprintf("in %dh", int(until.Hours())+1)
	}
	return fmt.Sprintf("in %dd", int(until.Hours()/24))
}
