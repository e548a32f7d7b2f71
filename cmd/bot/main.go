package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"labbot/internal/api"
	"labbot/internal/bot"
	"labbot/internal/command"
	"labbot/internal/config"
	"labbot/internal/export"
	"labbot/internal/logging"
	"labbot/internal/metrics"
	"labbot/internal/models"
	"labbot/internal/repository"
	"labbot/internal/sheets"
	"labbot/internal/store"
	"labbot/internal/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := prepareDirectories(cfg, logger); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := store.New(cfg.Storage.BookingsPath(), logger)
	m := metrics.New()
	router := command.NewRouter(st, logger, m)

	redisClient, rateLimit := initRateLimiter(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	mirrorWorker, err := initSheetsMirror(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Monitoring.PrometheusEnabled {
		go servePrometheus(cfg.Monitoring.PrometheusPort, logger)
	}

	if cfg.API.Enabled {
		apiServer := api.NewHTTPServer(cfg.API, st, logger)
		go func() {
			if err := apiServer.Start(); err != nil {
				logger.Error().Err(err).Msg("API server error")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = apiServer.Shutdown(shutdownCtx)
		}()
	}

	if cfg.Backup.Enabled {
		backupService := store.NewBackupService(cfg.Storage.BookingsPath(), cfg.Backup, logger)
		go backupService.Start(ctx)
	}

	return startBot(ctx, cfg, st, router, rateLimit, mirrorWorker, m, logger)
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := baseLogger.With().Str("component", "bot-main").Logger()

	return cfg, &logger, closer, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		logger.Error().Err(err).Msg("Failed to create data directory")
		return err
	}
	if cfg.Exports.Path != "" {
		if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
			logger.Error().Err(err).Msg("Failed to create export directory")
			return err
		}
	}
	return nil
}

// initRateLimiter wires the Redis-backed limiter with an in-memory fallback.
// Without a configured Redis address the in-memory limiter is used alone.
func initRateLimiter(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, repository.RateLimitRepository) {
	fallback := repository.NewMemoryRateLimitRepository()

	if cfg.Redis.Address == "" {
		return nil, fallback
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(ctx, redisClient); err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable")
	}

	primary := repository.NewRedisRateLimitRepository(redisClient)
	return redisClient, repository.NewFailoverRateLimitRepository(primary, fallback, logger)
}

func initSheetsMirror(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*worker.MirrorWorker, error) {
	if !cfg.Sheets.Enabled() {
		logger.Info().Msg("Google Sheets mirror disabled")
		return nil, nil
	}

	sheetsService, err := sheets.New(ctx, cfg.Sheets)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize Google Sheets service")
		return nil, err
	}

	if err := sheetsService.TestConnection(ctx); err != nil {
		if email, emailErr := sheets.ServiceAccountEmail(cfg.Sheets.CredentialsFile); emailErr == nil {
			logger.Error().Str("service_account", email).Msg("Share the spreadsheet with the service account")
		}
		logger.Error().Err(err).Msg("Google Sheets connection test failed")
		return nil, err
	}

	retryPolicy := worker.RetryPolicy{MaxRetries: 5, InitialDelay: 2 * time.Second, MaxDelay: time.Minute, BackoffFactor: 2}
	mirrorWorker := worker.NewMirrorWorker(sheetsService, retryPolicy, logger)
	go mirrorWorker.Start(ctx)

	logger.Info().Msg("Google Sheets mirror initialized")
	return mirrorWorker, nil
}

func servePrometheus(port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info().Str("addr", addr).Msg("Prometheus metrics listening")

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("Metrics server error")
	}
}

func startBot(
	ctx context.Context,
	cfg *config.Config,
	st *store.Store,
	router *command.Router,
	rateLimit repository.RateLimitRepository,
	mirrorWorker *worker.MirrorWorker,
	m *metrics.Metrics,
	logger *zerolog.Logger,
) error {
	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create BotAPI")
		return err
	}
	botAPI.Debug = cfg.Telegram.Debug

	telegramBot := bot.NewBot(bot.NewBotWrapper(botAPI), cfg, router, rateLimit, m, logger)
	if cfg.Exports.Path != "" {
		telegramBot.EnableExport(st, export.New(cfg.Exports.Path, logger))
	}

	router.OnSaved(func(_ context.Context, doc store.Document) {
		if mirrorWorker != nil {
			mirrorWorker.Enqueue(doc.Bookings)
		}
		telegramBot.NotifyManagers(documentSummary(doc))
	})

	logger.Info().Str("data_file", cfg.Storage.BookingsPath()).Msg("Bot started...")
	telegramBot.Start(ctx)

	logger.Info().Msg("Shutdown complete.")
	return nil
}

// documentSummary is the short change notice sent to manager chats after
// every successful save.
func documentSummary(doc store.Document) string {
	confirmed := 0
	for _, b := range doc.Bookings {
		if b.Status == models.StatusConfirmed {
			confirmed++
		}
	}
	return fmt.Sprintf("📋 Lab bookings updated: %d total, %d confirmed.", len(doc.Bookings), confirmed)
}
