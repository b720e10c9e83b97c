package enron

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrMalformedResponse is returned when the backend answers 2xx but the
// body does not have the expected shape.
var ErrMalformedResponse = errors.New("enron: malformed response")

// APIError is a non-2xx answer from the analysis backend.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("enron: backend returned %d: %s", e.StatusCode, e.Body)
}

// Client talks to the EnronBox analysis backend. All business logic
// (classification, summarization, search ranking, NER) lives behind
// these endpoints; the client only does transport and decoding.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config for the analysis backend client.
type Config struct {
	BaseURL string        // e.g. http://localhost:5050/api
	Timeout time.Duration // per-request timeout
}

// NewClient creates a client for the analysis backend.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 240 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Users lists the mailbox owners available in the dataset.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Folders lists the folder names of a user's mailbox.
func (c *Client) Folders(ctx context.Context, username string) ([]string, error) {
	var folders []string
	path := "/users/" + url.PathEscape(username) + "/folders"
	if err := c.getJSON(ctx, path, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// FolderEmails fetches the raw messages of one folder.
func (c *Client) FolderEmails(ctx context.Context, username, folder string) ([]RawEmail, error) {
	var emails []RawEmail
	path := "/users/" + url.PathEscape(username) + "/folders/" + url.PathEscape(folder) + "/emails"
	if err := c.getJSON(ctx, path, &emails); err != nil {
		return nil, err
	}
	if emails == nil {
		return nil, ErrMalformedResponse
	}
	return emails, nil
}

// ClassifyBatch sends a batch of messages to the classifier.
func (c *Client) ClassifyBatch(ctx context.Context, items []ClassifyItem) ([]ClassifyResult, error) {
	var results []ClassifyResult
	if err := c.postJSON(ctx, "/classify/batch", items, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Summarize asks the backend for an extractive summary.
func (c *Client) Summarize(ctx context.Context, req SummarizeRequest) (string, error) {
	var resp SummarizeResponse
	if err := c.postJSON(ctx, "/summarize", req, &resp); err != nil {
		return "", err
	}
	return resp.Summary, nil
}

// Search runs an IR query. A 2xx answer without a results array counts
// as malformed so the caller can fall back to client-side filtering.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]RawEmail, error) {
	var resp SearchResponse
	if err := c.postJSON(ctx, "/search", req, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, ErrMalformedResponse
	}
	return resp.Results, nil
}

// ExtractEntities runs named-entity recognition over an email body.
func (c *Client) ExtractEntities(ctx context.Context, req EntitiesRequest) (map[string][]string, error) {
	var resp EntitiesResponse
	if err := c.postJSON(ctx, "/ner", req, &resp); err != nil {
		return nil, err
	}
	if resp.Entities == nil {
		return nil, ErrMalformedResponse
	}
	return resp.Entities, nil
}

// Respond asks the backend to draft a reply.
func (c *Client) Respond(ctx context.Context, req RespondRequest) (string, error) {
	var resp RespondResponse
	if err := c.postJSON(ctx, "/respond", req, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", fmt.Errorf("enron: respond failed: %s", resp.Error)
	}
	return resp.Reply, nil
}

// SyncStatus pushes a partial status patch for one message. Callers
// treat this as fire-and-forget.
func (c *Client) SyncStatus(ctx context.Context, emailID int, patch StatusPatch) error {
	path := fmt.Sprintf("/emails/%d/status", emailID)
	return c.postJSON(ctx, path, patch, nil)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("enron: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("enron: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("enron: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
