package middleware

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// LoggingMiddleware logs every incoming update and how long it took.
type LoggingMiddleware struct {
	logger *zap.Logger
}

func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

func (m *LoggingMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	if update.Message == nil {
		next(update)
		return
	}

	start := time.Now()
	command := ""
	if update.Message.IsCommand() {
		command = update.Message.Command()
	}

	m.logger.Info("telegram update received",
		zap.Int64("user_id", update.Message.From.ID),
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("command", command),
		zap.Int("update_id", update.UpdateID),
	)

	next(update)

	m.logger.Info("telegram update processed",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.Duration("duration", time.Since(start)),
	)
}
