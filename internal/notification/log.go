package notification

import (
	"context"

	"github.com/wb-go/wbf/logger"
)

// LogSender writes notifications to the application log instead of delivering them.
type LogSender struct {
	logger logger.Logger
}

func NewLogSender(logger logger.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, contact, subject, body string) error {
	s.logger.LogAttrs(ctx, logger.InfoLevel, "notification",
		logger.String("contact", contact),
		logger.String("subject", subject),
		logger.String("body", body),
	)
	return nil
}
