package notification

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/wb-go/wbf/logger"
)

// TelegramSender treats the contact as a numeric Telegram chat id.
type TelegramSender struct {
	bot    *tgbotapi.BotAPI
	logger logger.Logger
}

func NewTelegramSender(token string, logger logger.Logger) (*TelegramSender, error) {
	if token == "" {
		logger.Warn("telegram bot token is empty, notifications disabled")
		return &TelegramSender{bot: nil, logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramSender{bot: bot, logger: logger}, nil
}

func (s *TelegramSender) Send(ctx context.Context, contact, subject, body string) error {
	if s.bot == nil {
		s.logger.Debug("notification skipped (bot disabled)", logger.String("subject", subject))
		return nil
	}

	chatID, err := strconv.ParseInt(contact, 10, 64)
	if err != nil {
		s.logger.Debug("notification skipped (contact is not a chat id)",
			logger.String("contact", contact),
		)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, telegramText(subject, body))
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message to %d: %w", chatID, err)
	}
	return nil
}

// telegramText bolds the subject. Booking fields come from clients, so both parts
// are escaped before Telegram parses them.
func telegramText(subject, body string) string {
	return fmt.Sprintf("*%s*\n\n%s",
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, subject),
		tgbotapi.EscapeText(tgbotapi.ModeMarkdown, body),
	)
}
