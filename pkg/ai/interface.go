package ai

import "context"

// ReplyRequest carries everything needed to draft a reply to an email.
type ReplyRequest struct {
	Content     string  `json:"content"`
	Subject     string  `json:"subject"`
	Sender      string  `json:"sender"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
}

// Service is the interface for email summarization and reply drafting.
// Implement this interface to add new providers (analysis backend,
// Ollama, OpenAI, etc.)
type Service interface {
	Summarize(ctx context.Context, emailText string, numSentences int) (string, error)
	GenerateReply(ctx context.Context, req ReplyRequest) (string, error)
}

// ProviderType represents the provider type
type ProviderType string

const (
	ProviderBackend ProviderType = "backend"
	ProviderOllama  ProviderType = "ollama"
	ProviderAuto    ProviderType = "auto"
)
