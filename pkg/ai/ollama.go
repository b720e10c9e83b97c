package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OllamaService implements Service against a local Ollama instance. It
// is the fallback path when the analysis backend is unreachable.
type OllamaService struct {
	getBaseURL func() string // Dynamic getter for BaseURL
	getModel   func() string // Dynamic getter for Model
}

// NewOllamaService creates a new Ollama service
func NewOllamaService(baseURL, model string) *OllamaService {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.2"
	}
	// Use static values (for when no runtime config is wired)
	return &OllamaService{
		getBaseURL: func() string { return baseURL },
		getModel:   func() string { return model },
	}
}

// NewOllamaServiceWithGetters creates a new Ollama service with dynamic
// getters so runtime settings updates take effect without a restart.
func NewOllamaServiceWithGetters(getBaseURL, getModel func() string) *OllamaService {
	return &OllamaService{
		getBaseURL: getBaseURL,
		getModel:   getModel,
	}
}

// Summarize implements Service
func (o *OllamaService) Summarize(ctx context.Context, emailText string, numSentences int) (string, error) {
	if numSentences <= 0 {
		numSentences = 3
	}

	prompt := fmt.Sprintf(`You are an email assistant. Summarize the following email in at most %d sentences.
Keep only the key points and any action items or deadlines. Do not add commentary.

EMAIL:
%s

SUMMARY:`, numSentences, emailText)

	return o.generate(ctx, o.getModel(), prompt, 0.3)
}

// GenerateReply implements Service
func (o *OllamaService) GenerateReply(ctx context.Context, req ReplyRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = o.getModel()
	}
	temperature := req.Temperature
	if temperature <= 0 {
		temperature = 0.7
	}

	prompt := fmt.Sprintf(`You are drafting a professional email reply.

Original email from %s, subject "%s":
%s

Write a concise, polite reply. Return only the reply body, no headers.`, req.Sender, req.Subject, req.Content)

	reply, err := o.generate(ctx, model, prompt, temperature)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

func (o *OllamaService) generate(ctx context.Context, model, prompt string, temperature float64) (string, error) {
	url := o.getBaseURL() + "/api/generate"

	payload := map[string]interface{}{
		"model":  model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": temperature,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Response string `json:"response"`
		Done     bool   `json:"done"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return result.Response, nil
}
