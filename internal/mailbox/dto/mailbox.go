package dto

import (
	"github.com/NoamFav/EnronBox/internal/mailbox/state"
	"github.com/NoamFav/EnronBox/pkg/enron"
)

// UsersResponse wraps the dataset user list.
type UsersResponse struct {
	Users []enron.User `json:"users"`
}

// FoldersResponse wraps a user's folder names.
type FoldersResponse struct {
	Folders []string `json:"folders"`
}

// MailboxViewResponse is a committed view snapshot, optionally carrying
// the error that left it empty.
type MailboxViewResponse struct {
	state.View
	Error string `json:"error,omitempty"`
}

// SummarizeRequest carries the body of the selected message.
type SummarizeRequest struct {
	EmailText    string `json:"email_text" binding:"required"`
	NumSentences int    `json:"num_sentences"`
}

// SummarizeResponse carries the generated or cached summary.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// EntitiesRequest carries the body of the selected message.
type EntitiesRequest struct {
	EmailText string `json:"email_text" binding:"required"`
}

// EntitiesResponse maps entity labels to extracted values.
type EntitiesResponse struct {
	Entities map[string][]string `json:"entities"`
}

// ReplyResponse mirrors the upstream /respond contract.
type ReplyResponse struct {
	Success bool   `json:"success"`
	Reply   string `json:"reply,omitempty"`
	Error   string `json:"error,omitempty"`
}

// QueueSummaryItem is one message to summarize in the background.
type QueueSummaryItem struct {
	ID      int    `json:"id" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// QueueSummariesRequest asks for background summaries of a batch.
type QueueSummariesRequest struct {
	Emails []QueueSummaryItem `json:"emails" binding:"required"`
}

// QueueSummariesResponse returns cached summaries immediately; the rest
// arrive as SSE "summary_update" events.
type QueueSummariesResponse struct {
	Summaries map[int]string `json:"summaries"`
	Queued    int            `json:"queued"`
}

// SuggestionsResponse wraps search auto-complete suggestions.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
