package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	mailboxdomain "github.com/NoamFav/EnronBox/internal/mailbox/domain"
	mailboxdto "github.com/NoamFav/EnronBox/internal/mailbox/dto"
	"github.com/NoamFav/EnronBox/internal/mailbox/usecase"
	"github.com/NoamFav/EnronBox/pkg/ai"
)

type MailboxHandler struct {
	mailboxUsecase usecase.MailboxUsecase
}

func NewMailboxHandler(mailboxUsecase usecase.MailboxUsecase) *MailboxHandler {
	return &MailboxHandler{
		mailboxUsecase: mailboxUsecase,
	}
}

func (h *MailboxHandler) GetUsers(c *gin.Context) {
	users, err := h.mailboxUsecase.Users(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, mailboxdto.UsersResponse{Users: users})
}

func (h *MailboxHandler) GetFolders(c *gin.Context) {
	username := c.Param("username")
	folders, err := h.mailboxUsecase.Folders(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, mailboxdto.FoldersResponse{Folders: folders})
}

// GetFolderEmails runs the view pipeline. A non-empty q switches the
// fetch to the IR search endpoint; filter and sort options arrive as
// query parameters.
func (h *MailboxHandler) GetFolderEmails(c *gin.Context) {
	username := c.Param("username")
	folder := c.Param("folder")
	query := c.Query("q")

	opts := mailboxdomain.FilterOptions{
		UnreadOnly:     boolQuery(c, "unread_only"),
		HasAttachments: boolQuery(c, "has_attachments"),
		SortBy:         c.DefaultQuery("sort_by", mailboxdomain.SortByDate),
		ByLabel:        c.Query("label"),
	}

	view, err := h.mailboxUsecase.FetchMailbox(c.Request.Context(), username, folder, query, opts)
	if err != nil {
		// Empty-but-functional payload: the UI clears its loading
		// state and renders the warnings.
		c.JSON(http.StatusBadGateway, mailboxdto.MailboxViewResponse{View: view, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, mailboxdto.MailboxViewResponse{View: view})
}

func (h *MailboxHandler) UpdateStatus(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}
	emailID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email id"})
		return
	}

	var patch mailboxdomain.StatusPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := h.mailboxUsecase.UpdateStatus(c.Request.Context(), username, emailID, patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *MailboxHandler) SummarizeEmail(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}
	emailID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email id"})
		return
	}

	var req mailboxdto.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.mailboxUsecase.Summarize(c.Request.Context(), username, emailID, req.EmailText)
	if err != nil {
		if errors.Is(err, usecase.ErrNoContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no content to summarize"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, mailboxdto.SummarizeResponse{Summary: summary})
}

func (h *MailboxHandler) ExtractEntities(c *gin.Context) {
	emailID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email id"})
		return
	}

	var req mailboxdto.EntitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entities, err := h.mailboxUsecase.ExtractEntities(c.Request.Context(), emailID, req.EmailText)
	if err != nil {
		if errors.Is(err, usecase.ErrNoContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no content to extract entities from"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, mailboxdto.EntitiesResponse{Entities: entities})
}

func (h *MailboxHandler) GenerateReply(c *gin.Context) {
	var req ai.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, mailboxdto.ReplyResponse{Success: false, Error: err.Error()})
		return
	}

	reply, err := h.mailboxUsecase.GenerateReply(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrNoContent) {
			c.JSON(http.StatusBadRequest, mailboxdto.ReplyResponse{Success: false, Error: "no content to reply to"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, mailboxdto.ReplyResponse{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, mailboxdto.ReplyResponse{Success: true, Reply: reply})
}

func (h *MailboxHandler) GetSearchSuggestions(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}
	query := c.Query("q")

	limit := 5
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	suggestions := h.mailboxUsecase.SearchSuggestions(username, query, limit)
	c.JSON(http.StatusOK, mailboxdto.SuggestionsResponse{Suggestions: suggestions})
}

func boolQuery(c *gin.Context, name string) bool {
	value, err := strconv.ParseBool(c.DefaultQuery(name, "false"))
	return err == nil && value
}
