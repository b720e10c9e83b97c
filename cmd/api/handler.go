package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	mailboxDelivery "github.com/NoamFav/EnronBox/internal/mailbox/delivery"
	"github.com/NoamFav/EnronBox/internal/mailbox/repository"
	mailboxUsecase "github.com/NoamFav/EnronBox/internal/mailbox/usecase"
	"github.com/NoamFav/EnronBox/pkg/ai"
	"github.com/NoamFav/EnronBox/pkg/config"
	"github.com/NoamFav/EnronBox/pkg/enron"
	"github.com/NoamFav/EnronBox/pkg/sse"
)

type Handler struct {
	mailboxUsecase mailboxUsecase.MailboxUsecase
	sseManager     *sse.Manager
	config         *config.Config
	summaryHandler *mailboxDelivery.SummaryHandler
	summaryWorker  *mailboxUsecase.SummaryWorkerService
	logger         *slog.Logger
}

// NewHandler assembles the AI provider chain and the background summary
// workers around an already-wired mailbox usecase.
func NewHandler(
	mailboxUc mailboxUsecase.MailboxUsecase,
	enronClient *enron.Client,
	summaryRepo repository.EmailSummaryRepository,
	sseManager *sse.Manager,
	cfg *config.Config,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	// Runtime Ollama settings start from static config and can be
	// repointed through the settings endpoints.
	InitRuntimeConfig(cfg.OllamaBaseURL, cfg.OllamaModel)

	aiService, err := ai.NewService(ai.Config{
		Provider:         ai.ProviderType(cfg.AIProvider),
		Backend:          enronClient,
		GetOllamaBaseURL: GetRuntimeOllamaBaseURL,
		GetOllamaModel:   GetRuntimeOllamaModel,
	})
	if err != nil {
		logger.Warn("AI service unavailable, enrichment endpoints will degrade", "error", err)
	} else {
		logger.Info("AI service initialized", "provider", cfg.AIProvider)
		mailboxUc.SetAIService(aiService)
	}

	summaryWorker := mailboxUsecase.NewSummaryWorkerService(summaryRepo, sseManager, cfg.SummaryWorkers, logger)
	if aiService != nil {
		summaryWorker.SetAIService(aiService)
	}
	summaryWorker.Start()
	logger.Info("summary workers started", "count", cfg.SummaryWorkers)

	return &Handler{
		mailboxUsecase: mailboxUc,
		sseManager:     sseManager,
		config:         cfg,
		summaryHandler: mailboxDelivery.NewSummaryHandler(summaryWorker),
		summaryWorker:  summaryWorker,
		logger:         logger,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware: the desktop client runs from a different origin
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, Accept, Origin, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.mailboxUsecase, h.sseManager, h.summaryHandler)

	return r.Run(addr)
}
