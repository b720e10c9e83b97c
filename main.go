package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	api "github.com/NoamFav/EnronBox/cmd/api"
	mailboxdomain "github.com/NoamFav/EnronBox/internal/mailbox/domain"
	mailboxRepo "github.com/NoamFav/EnronBox/internal/mailbox/repository"
	"github.com/NoamFav/EnronBox/internal/mailbox/state"
	mailboxUsecase "github.com/NoamFav/EnronBox/internal/mailbox/usecase"
	"github.com/NoamFav/EnronBox/pkg/config"
	"github.com/NoamFav/EnronBox/pkg/database"
	"github.com/NoamFav/EnronBox/pkg/enron"
	"github.com/NoamFav/EnronBox/pkg/sse"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&mailboxdomain.EmailStatus{}, &mailboxdomain.EmailSummary{}); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Initialize repositories (dependency injection)
	statusRepo := mailboxRepo.NewEmailStatusRepository(db)
	summaryRepo := mailboxRepo.NewEmailSummaryRepository(db)

	// Analysis backend client
	enronClient := enron.NewClient(enron.Config{
		BaseURL: cfg.EnronAPIURL,
		Timeout: cfg.EnronAPITimeout,
	})

	// Initialize SSE manager for background summary updates
	sseManager := sse.NewManager()
	go sseManager.Run()

	// Per-session view state with generation guards
	viewStore := state.NewStore()

	mailboxUc := mailboxUsecase.NewMailboxUsecase(
		enronClient,
		statusRepo,
		summaryRepo,
		viewStore,
		cfg.OllamaModel,
		cfg.DefaultTemperature,
		logger,
	)

	// Initialize HTTP handler
	handler := api.NewHandler(mailboxUc, enronClient, summaryRepo, sseManager, cfg, logger)

	logger.Info("server starting", "port", cfg.Port, "enron_api", cfg.EnronAPIURL)
	if err := handler.Start(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level, format string) *slog.Logger {
	var handler slog.Handler
	logLevel := parseLevel(level)

	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		})
	} else {
		// Pretty colored output for console
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.DateTime,
		})
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
