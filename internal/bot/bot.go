package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/vocabbot/internal/database"
	"github.com/example/vocabbot/internal/review"
	"github.com/example/vocabbot/pkg/models"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// reviewSession represents a chat's ongoing review session
type reviewSession struct {
	Queue     []models.WordRecord
	Index     int
	StartedAt time.Time
}

// Bot represents the Telegram bot application
type Bot struct {
	api          *tgbotapi.BotAPI
	tracker      *review.Tracker
	words        *database.WordRepository
	activity     *database.ActivityRepository
	config       *BotConfig
	sessions     map[int64]*reviewSession
	reminderChat int64
}

// New creates a new bot instance
func New(token string, tracker *review.Tracker, words *database.WordRepository, activity *database.ActivityRepository) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %v", err)
	}

	var reminderChat int64
	if v := os.Getenv("REMINDER_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			reminderChat = id
		} else {
			log.Printf("Warning: invalid REMINDER_CHAT_ID %q, reminders disabled", v)
		}
	}

	return &Bot{
		api:          api,
		tracker:      tracker,
		words:        words,
		activity:     activity,
		config:       DefaultConfig(),
		sessions:     make(map[int64]*reviewSession),
		reminderChat: reminderChat,
	}, nil
}

// Start begins receiving and handling updates until the context is canceled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	log.Printf("Authorized on account %s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.dispatch(update)
		}
	}
}

// Stop shuts the update channel down.
func (b *Bot) Stop(ctx context.Context) error {
	b.api.StopReceivingUpdates()
	return nil
}

func (b *Bot) dispatch(update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		if err := b.HandleCommand(update.Message); err != nil {
			log.Printf("Error handling command /%s: %v", update.Message.Command(), err)
		}
	case update.CallbackQuery != nil:
		if err := b.HandleCallback(update.CallbackQuery); err != nil {
			log.Printf("Error handling callback %q: %v", update.CallbackQuery.Data, err)
		}
	}
}

// SendDueReminder implements scheduler.Notifier: it pushes a short summary of
// the most urgent due words to the configured reminder chat.
func (b *Bot) SendDueReminder(words []models.WordRecord) error {
	if b.reminderChat == 0 {
		log.Printf("REMINDER_CHAT_ID is not set, skipping reminder for %d due words", len(words))
		return nil
	}

	text := fmt.Sprintf("⏰ %d word(s) waiting for review:\n", len(words))
	for i, rec := range words {
		if i >= 5 {
			text += fmt.Sprintf("…and %d more\n", len(words)-i)
			break
		}
		text += fmt.Sprintf("• %s\n", rec.Text)
	}
	text += "\nUse /review to start."

	msg := tgbotapi.NewMessage(b.reminderChat, text)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %v", err)
	}
	return nil
}

// session returns the chat's live session, dropping it once it times out.
func (b *Bot) session(chatID int64) (*reviewSession, bool) {
	s, ok := b.sessions[chatID]
	if !ok {
		return nil, false
	}
	if time.Since(s.StartedAt) > b.config.SessionTimeout {
		delete(b.sessions, chatID)
		return nil, false
	}
	return s, true
}

// sendText sends a plain text message to a chat.
func (b *Bot) sendText(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
