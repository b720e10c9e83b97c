package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	mailboxDelivery "github.com/NoamFav/EnronBox/internal/mailbox/delivery"
	mailboxUsecase "github.com/NoamFav/EnronBox/internal/mailbox/usecase"
	"github.com/NoamFav/EnronBox/pkg/sse"
)

func SetupRoutes(r *gin.Engine, mailboxUc mailboxUsecase.MailboxUsecase, sseManager *sse.Manager, summaryHandler *mailboxDelivery.SummaryHandler) {
	mailboxHandler := mailboxDelivery.NewMailboxHandler(mailboxUc)

	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// SSE endpoint for background summary updates
		api.GET("/events", func(c *gin.Context) {
			username := c.Query("username")
			if username == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
				return
			}
			sseManager.ServeHTTP(c, username)
		})

		// Mailbox browsing
		api.GET("/users", mailboxHandler.GetUsers)
		api.GET("/users/:username/folders", mailboxHandler.GetFolders)
		api.GET("/users/:username/folders/:folder/emails", mailboxHandler.GetFolderEmails)

		// Per-message status (optimistic, synced upstream fire-and-forget)
		api.POST("/emails/:id/status", mailboxHandler.UpdateStatus)

		// Enrichment (rate limited: these fan out to the analysis
		// backend or a local LLM)
		enrich := api.Group("")
		enrich.Use(mailboxDelivery.RateLimiter(10, time.Minute))
		{
			enrich.POST("/emails/:id/summary", mailboxHandler.SummarizeEmail)
			enrich.POST("/emails/:id/entities", mailboxHandler.ExtractEntities)
			enrich.POST("/respond", mailboxHandler.GenerateReply)
			enrich.POST("/summaries/queue", summaryHandler.QueueSummaries)
		}

		// Search auto-complete over the current snapshot
		api.GET("/search/suggestions", mailboxHandler.GetSearchSuggestions)

		// Runtime configuration for the Ollama fallback
		settings := api.Group("/settings")
		{
			settings.GET("/ollama", GetOllamaSettings)
			settings.PUT("/ollama", UpdateOllamaSettings)
			settings.POST("/ollama/test", TestOllamaConnection)
		}
	}
}
