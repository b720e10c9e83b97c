package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/NoamFav/EnronBox/pkg/enron"
)

// FallbackService routes requests to the analysis backend first and
// falls back to the local Ollama instance when the backend is down or
// answers with a server error. Enrichment must keep working in a
// degraded mode when the backend does not.
type FallbackService struct {
	backend Service
	ollama  *OllamaService
}

// NewFallbackService creates a new fallback service with both providers
func NewFallbackService(backend Service, ollama *OllamaService) *FallbackService {
	return &FallbackService{
		backend: backend,
		ollama:  ollama,
	}
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"eof",
	}
	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// isServerError checks if the backend answered with a 5xx status.
func isServerError(err error) bool {
	var apiErr *enron.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 500
}

// Summarize tries the backend first, falls back to Ollama when the
// backend is unreachable or failing.
func (f *FallbackService) Summarize(ctx context.Context, emailText string, numSentences int) (string, error) {
	if f.backend != nil {
		result, err := f.backend.Summarize(ctx, emailText, numSentences)
		if err == nil {
			return result, nil
		}
		if f.ollama == nil || !(isConnectionError(err) || isServerError(err)) {
			return "", fmt.Errorf("backend summarization failed: %w", err)
		}
		slog.Warn("backend summarization failed, falling back to ollama", "error", err)
	}

	if f.ollama != nil {
		return f.ollama.Summarize(ctx, emailText, numSentences)
	}

	return "", fmt.Errorf("no provider available for summarization")
}

// GenerateReply tries the backend first, falls back to Ollama when the
// backend is unreachable or failing.
func (f *FallbackService) GenerateReply(ctx context.Context, req ReplyRequest) (string, error) {
	if f.backend != nil {
		result, err := f.backend.GenerateReply(ctx, req)
		if err == nil {
			return result, nil
		}
		if f.ollama == nil || !(isConnectionError(err) || isServerError(err)) {
			return "", fmt.Errorf("backend reply generation failed: %w", err)
		}
		slog.Warn("backend reply generation failed, falling back to ollama", "error", err)
	}

	if f.ollama != nil {
		return f.ollama.GenerateReply(ctx, req)
	}

	return "", fmt.Errorf("no provider available for reply generation")
}
