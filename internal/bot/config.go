package bot

import (
	"time"
)

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Number of words presented per review session
	WordsPerSession int
	// How long an idle session survives before it is dropped
	SessionTimeout time.Duration
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		WordsPerSession: 10,
		SessionTimeout:  time.Hour * 1,
	}
}
