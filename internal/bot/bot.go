package bot

import (
	"context"
	"time"

	"labbot/internal/command"
	"labbot/internal/config"
	"labbot/internal/export"
	"labbot/internal/metrics"
	"labbot/internal/repository"
	"labbot/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sender is the slice of the Telegram API the bot uses. Tests substitute a
// fake; production wraps *tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

// BotWrapper adapts *tgbotapi.BotAPI to the Sender interface.
type BotWrapper struct {
	*tgbotapi.BotAPI
}

func NewBotWrapper(bot *tgbotapi.BotAPI) *BotWrapper {
	return &BotWrapper{BotAPI: bot}
}

func (w *BotWrapper) GetSelf() tgbotapi.User {
	return w.Self
}

func (w *BotWrapper) StopReceivingUpdates() {
	w.BotAPI.StopReceivingUpdates()
}

// Bot consumes Telegram updates and forwards /lab invocations to the command
// router. It owns no booking logic of its own.
type Bot struct {
	tg        Sender
	config    *config.Config
	router    *command.Router
	rateLimit repository.RateLimitRepository
	metrics   *metrics.Metrics
	logger    *zerolog.Logger

	store    *store.Store
	exporter *export.Exporter
}

func NewBot(
	tg Sender,
	cfg *config.Config,
	router *command.Router,
	rateLimit repository.RateLimitRepository,
	m *metrics.Metrics,
	logger *zerolog.Logger,
) *Bot {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Bot{
		tg:        tg,
		config:    cfg,
		router:    router,
		rateLimit: rateLimit,
		metrics:   m,
		logger:    logger,
	}
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.tg.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.tg.GetSelf().UserName).Msg("Authorized on account")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Bot stopping...")
			b.tg.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}

			updateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)

			requestID := uuid.New().String()
			l := b.logger.With().Str("request_id", requestID).Logger()
			updateCtx = l.WithContext(updateCtx)

			b.withRecovery(func() {
				b.handleMessage(updateCtx, update)
			})
			cancel()
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := update.Message.Text
	l := zerolog.Ctx(ctx)

	if b.metrics != nil {
		b.metrics.MessagesProcessed.Inc()
	}

	if b.isBlacklisted(userID) {
		return
	}

	args, ok := b.parseLabInvocation(text)
	if !ok {
		switch {
		case isStartCommand(text):
			b.sendMessage(chatID, b.router.Dispatch(ctx, nil))
		case isExportCommand(text) && b.isManager(userID) && b.exporter != nil:
			b.handleExport(ctx, chatID)
		}
		return
	}

	l.Debug().
		Int64("user_id", userID).
		Str("username", update.Message.From.UserName).
		Strs("args", args).
		Msg("Handling lab command")

	if !b.allowRate(ctx, userID) {
		if b.metrics != nil {
			b.metrics.RateLimited.Inc()
		}
		b.sendMessage(chatID, "⏳ Too many requests. Please wait a minute and try again.")
		return
	}

	reply := b.router.Dispatch(ctx, args)
	b.sendMessage(chatID, reply)
}

// EnableExport turns on the manager-only /export command, which renders the
// current document as an Excel file and sends it back in chat.
func (b *Bot) EnableExport(st *store.Store, exporter *export.Exporter) {
	b.store = st
	b.exporter = exporter
}

func (b *Bot) handleExport(ctx context.Context, chatID int64) {
	doc := b.store.Load(ctx)

	path, err := b.exporter.SaveToFile(doc.Bookings, time.Now())
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Export failed")
		b.sendMessage(chatID, "❌ Export failed. Please try again later.")
		return
	}

	docMsg := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	if _, err := b.tg.Send(docMsg); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send export file")
	}
}

// NotifyManagers sends text to every configured manager chat. Send failures
// are logged per recipient and do not affect the others.
func (b *Bot) NotifyManagers(text string) {
	for _, managerID := range b.config.Managers {
		b.sendMessage(managerID, text)
	}
}

// allowRate consults the rate-limit repository; a broken repository fails
// open so a Redis outage cannot take the command surface down with it.
func (b *Bot) allowRate(ctx context.Context, userID int64) bool {
	if b.rateLimit == nil {
		return true
	}

	limit := b.config.Bot.RateLimitMessages
	window := time.Duration(b.config.Bot.RateLimitWindow) * time.Second

	allowed, err := b.rateLimit.CheckRateLimit(ctx, userID, limit, window)
	if err != nil {
		b.logger.Warn().Err(err).Int64("user_id", userID).Msg("Rate limit check failed, allowing request")
		return true
	}
	return allowed
}
