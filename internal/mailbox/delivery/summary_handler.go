package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mailboxdto "github.com/NoamFav/EnronBox/internal/mailbox/dto"
	"github.com/NoamFav/EnronBox/internal/mailbox/usecase"
)

// SummaryHandler handles batch summary API endpoints
type SummaryHandler struct {
	summaryWorker *usecase.SummaryWorkerService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryWorker *usecase.SummaryWorkerService) *SummaryHandler {
	return &SummaryHandler{
		summaryWorker: summaryWorker,
	}
}

// POST /api/summaries/queue
// QueueSummaries queues emails for background summary generation.
// Cached summaries come back immediately; the rest arrive via SSE
// "summary_update" events.
func (h *SummaryHandler) QueueSummaries(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	var req mailboxdto.QueueSummariesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Emails) == 0 {
		c.JSON(http.StatusOK, mailboxdto.QueueSummariesResponse{Summaries: map[int]string{}})
		return
	}

	jobs := make([]usecase.SummaryJob, len(req.Emails))
	for i, item := range req.Emails {
		jobs[i] = usecase.SummaryJob{
			EmailID: item.ID,
			Subject: item.Subject,
			Body:    item.Body,
		}
	}

	cached, queued, err := h.summaryWorker.QueueSummaries(username, jobs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get summaries"})
		return
	}

	c.JSON(http.StatusOK, mailboxdto.QueueSummariesResponse{
		Summaries: cached,
		Queued:    queued,
	})
}
