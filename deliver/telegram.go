// Package deliver pushes a rendered digest to optional external targets.
package deliver

import (
	"fmt"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// telegramMessageLimit is Telegram's hard cap per message
const telegramMessageLimit = 4096

// TelegramSender posts digests to a chat
type TelegramSender struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramSender authenticates with the bot token from TELEGRAM_BOT_TOKEN
func NewTelegramSender(chatID int64) (*TelegramSender, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth failed: %w", err)
	}
	return &TelegramSender{api: api, chatID: chatID}, nil
}

// Send posts text as one or more HTML-formatted messages, splitting on
// paragraph boundaries when the digest exceeds the message limit
func (t *TelegramSender) Send(text string) error {
	for _, chunk := range splitMessage(text, telegramMessageLimit) {
		msg := tgbotapi.NewMessage(t.chatID, chunk)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = true
		if _, err := t.api.Send(msg); err != nil {
			return fmt.Errorf("telegram send failed: %w", err)
		}
	}
	return nil
}

// splitMessage breaks text into chunks of at most limit bytes, preferring
// paragraph boundaries
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		if current.Len() > 0 && current.Len()+len(para)+2 > limit {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		// A single paragraph over the limit is cut hard
		if len(para) > limit {
			para = para[:limit]
		}
		current.WriteString(para)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
