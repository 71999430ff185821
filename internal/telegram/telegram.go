package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/telegram/middleware"
	"github.com/futig/cookbook-backend/internal/telegram/render"
	"github.com/futig/cookbook-backend/internal/usecase/news"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// commandTimeout bounds one command end to end, including the search
// and LLM calls a deep dive makes.
const commandTimeout = 2 * time.Minute

// Bot serves the news digest over Telegram. Each chat maps to one news
// session; the mapping is dropped when the backend session expires.
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	newsUC      *news.Usecase
	chats       *gocache.Cache
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// NewBot creates the Telegram bot on top of the news usecase.
func NewBot(cfg *config.TelegramConfig, newsUC *news.Usecase, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}
	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:      api,
		cfg:      cfg,
		newsUC:   newsUC,
		chats:    gocache.New(gocache.NoExpiration, 0),
		logger:   logger,
		stopChan: make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot, nil
}

// Start begins polling for updates.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop drains in-flight handlers, bounded by the configured timeout.
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	message := update.Message
	if message == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	ctx = ctxzap.ToContext(ctx, b.logger)

	if !message.IsCommand() {
		b.sendText(message.Chat.ID, render.MsgHelp)
		return
	}

	command := message.Command()
	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	switch command {
	case "start":
		b.sendText(message.Chat.ID, render.MsgWelcome)
	case "help":
		b.sendText(message.Chat.ID, render.MsgHelp)
	case "news":
		b.handleNews(ctx, message)
	case "dive":
		b.handleDive(ctx, message)
	default:
		b.sendText(message.Chat.ID, render.ErrUnknownCmd)
	}
}

// handleNews refreshes the chat's headline list, starting a fresh
// session when the old one has expired.
func (b *Bot) handleNews(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	digest, err := b.newsUC.Refresh(ctx, b.sessionFor(chatID))
	if err != nil && isStaleSession(err) {
		b.forgetSession(chatID)
		digest, err = b.newsUC.Refresh(ctx, "")
	}
	if err != nil {
		ctxzap.Error(ctx, "failed to refresh headlines",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.sendText(chatID, render.ErrGeneric)
		return
	}

	b.chats.Set(chatKey(chatID), digest.SessionID, gocache.NoExpiration)
	b.sendText(chatID, render.Digest(digest))
}

// handleDive produces a deep-dive report on one headline by number.
func (b *Bot) handleDive(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	index, err := strconv.Atoi(strings.TrimSpace(message.CommandArguments()))
	if err != nil || index < 1 {
		b.sendText(chatID, render.ErrBadDiveArg)
		return
	}

	sessionID := b.sessionFor(chatID)
	if sessionID == "" {
		b.sendText(chatID, render.MsgNoDigest)
		return
	}

	dive, err := b.newsUC.DeepDive(ctx, sessionID, index)
	switch {
	case err == nil:
		b.sendText(chatID, render.DiveReport(dive))
	case errors.Is(err, entity.ErrArticleNotFound):
		b.sendText(chatID, render.ErrNoSuchIndex)
	case isStaleSession(err):
		b.forgetSession(chatID)
		b.sendText(chatID, render.MsgNoDigest)
	default:
		ctxzap.Error(ctx, "deep dive failed",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.Int("article_index", index),
		)
		b.sendText(chatID, render.ErrGeneric)
	}
}

func (b *Bot) sessionFor(chatID int64) string {
	if v, ok := b.chats.Get(chatKey(chatID)); ok {
		return v.(string)
	}
	return ""
}

func (b *Bot) forgetSession(chatID int64) {
	b.chats.Delete(chatKey(chatID))
}

func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

func chatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func isStaleSession(err error) bool {
	return errors.Is(err, entity.ErrSessionNotFound) ||
		errors.Is(err, entity.ErrSessionExpired) ||
		errors.Is(err, entity.ErrWrongSessionApp)
}
