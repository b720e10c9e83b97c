package ai

import (
	"context"

	"github.com/NoamFav/EnronBox/pkg/enron"
)

// BackendService implements Service by delegating to the analysis
// backend's /summarize and /respond endpoints.
type BackendService struct {
	client *enron.Client
}

// NewBackendService creates a Service backed by the analysis backend.
func NewBackendService(client *enron.Client) *BackendService {
	return &BackendService{client: client}
}

// Summarize implements Service
func (s *BackendService) Summarize(ctx context.Context, emailText string, numSentences int) (string, error) {
	if numSentences <= 0 {
		numSentences = 3
	}
	return s.client.Summarize(ctx, enron.SummarizeRequest{
		EmailText:    emailText,
		NumSentences: numSentences,
	})
}

// GenerateReply implements Service
func (s *BackendService) GenerateReply(ctx context.Context, req ReplyRequest) (string, error) {
	return s.client.Respond(ctx, enron.RespondRequest{
		Content:     req.Content,
		Subject:     req.Subject,
		Sender:      req.Sender,
		Model:       req.Model,
		Temperature: req.Temperature,
	})
}
