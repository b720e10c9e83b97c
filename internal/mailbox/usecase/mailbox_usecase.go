package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	mailboxdomain "github.com/NoamFav/EnronBox/internal/mailbox/domain"
	"github.com/NoamFav/EnronBox/internal/mailbox/repository"
	"github.com/NoamFav/EnronBox/internal/mailbox/state"
	"github.com/NoamFav/EnronBox/pkg/ai"
	"github.com/NoamFav/EnronBox/pkg/enron"
	"github.com/NoamFav/EnronBox/pkg/fuzzy"
)

// ErrNoContent is returned when an enrichment operation is asked to run
// over an empty email body.
var ErrNoContent = errors.New("no content to process")

// errSuperseded marks a classification result that arrived after a
// newer fetch was issued; the stale pipeline drops it.
var errSuperseded = errors.New("classification superseded by a newer fetch")

const statusSyncTimeout = 10 * time.Second

// Input larger than this is truncated before it reaches a summarizer.
const maxSummaryInput = 5000

type mailboxUsecase struct {
	client      *enron.Client
	statusRepo  repository.EmailStatusRepository
	summaryRepo repository.EmailSummaryRepository
	store       *state.Store
	aiService   ai.Service

	defaultModel       string
	defaultTemperature float64

	logger *slog.Logger
}

// NewMailboxUsecase wires the view pipeline.
func NewMailboxUsecase(
	client *enron.Client,
	statusRepo repository.EmailStatusRepository,
	summaryRepo repository.EmailSummaryRepository,
	store *state.Store,
	defaultModel string,
	defaultTemperature float64,
	logger *slog.Logger,
) MailboxUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &mailboxUsecase{
		client:             client,
		statusRepo:         statusRepo,
		summaryRepo:        summaryRepo,
		store:              store,
		defaultModel:       defaultModel,
		defaultTemperature: defaultTemperature,
		logger:             logger,
	}
}

// SetAIService injects the summarize/reply provider chain.
func (u *mailboxUsecase) SetAIService(svc ai.Service) {
	u.aiService = svc
}

func (u *mailboxUsecase) Users(ctx context.Context) ([]enron.User, error) {
	return u.client.Users(ctx)
}

func (u *mailboxUsecase) Folders(ctx context.Context, username string) ([]string, error) {
	return u.client.Folders(ctx, username)
}

// FetchMailbox is the view pipeline: fetch raw records (folder listing
// or IR search), normalize with persisted status, classify best-effort,
// merge labels, filter and sort, then commit the snapshot under the
// generation token taken at issue time. Classification and search
// degradation never fail the primary list; upstream folder failure
// does.
func (u *mailboxUsecase) FetchMailbox(ctx context.Context, username, folder, query string, opts mailboxdomain.FilterOptions) (state.View, error) {
	category := state.CategoryFolder
	if query != "" {
		category = state.CategorySearch
	}
	gen := u.store.Begin(username, category)

	var (
		raw      []enron.RawEmail
		warnings []string
		err      error

		// set when the IR endpoint degraded and results still need
		// client-side filtering
		localFilter bool
	)
	if query != "" {
		raw, err = u.client.Search(ctx, enron.SearchRequest{
			Query:        query,
			Username:     username,
			Folder:       folder,
			SearchFields: []string{"subject", "body"},
			MaxResults:   100,
		})
		if err != nil {
			u.logger.Warn("search endpoint degraded, falling back to local filtering",
				"username", username, "folder", folder, "error", err)
			warnings = append(warnings, "search unavailable, results filtered locally")
			raw, err = u.client.FolderEmails(ctx, username, folder)
			localFilter = true
		}
	} else {
		raw, err = u.client.FolderEmails(ctx, username, folder)
	}
	if err != nil {
		// Primary fetch failed: commit an empty but functional view so
		// the UI leaves its loading state.
		empty := state.View{
			Folder:   folder,
			Query:    query,
			Messages: []mailboxdomain.Message{},
			Labels:   []mailboxdomain.Label{},
			Warnings: append(warnings, "failed to load emails"),
		}
		u.store.Commit(username, category, gen, empty)
		return empty, fmt.Errorf("fetch emails for %s/%s: %w", username, folder, err)
	}

	ids := make([]int, len(raw))
	for i, e := range raw {
		ids[i] = e.ID
	}
	statuses, err := u.statusRepo.GetStatuses(username, ids)
	if err != nil {
		u.logger.Warn("status store unavailable, using defaults", "error", err)
		warnings = append(warnings, "message status unavailable")
		statuses = map[int]mailboxdomain.EmailStatus{}
	}

	messages := NormalizeEmails(raw, statuses, time.Now())
	messages = ExcludeHidden(messages, statuses)

	if query != "" {
		if localFilter {
			messages = FilterByQuery(messages, query)
		} else {
			messages = RankBySubjectMatch(messages, query)
		}
	}

	labels := []mailboxdomain.Label{}
	if len(messages) > 0 {
		classified, merged, classifyErr := u.classify(ctx, username, messages)
		if classifyErr != nil {
			u.logger.Warn("classification degraded", "username", username, "error", classifyErr)
			warnings = append(warnings, "classification unavailable")
		} else {
			messages, labels = classified, merged
		}
	}

	view := state.View{
		Folder:   folder,
		Query:    query,
		Messages: ApplyFilters(messages, opts, labels),
		Labels:   labels,
		Warnings: warnings,
	}
	view.Total = len(view.Messages)

	if !u.store.Commit(username, category, gen, view) {
		u.logger.Debug("discarding stale fetch result",
			"username", username, "folder", folder, "generation", gen)
	}
	return view, nil
}

// classify runs the batch classifier and merges labels. The caller
// treats any error as non-fatal.
func (u *mailboxUsecase) classify(ctx context.Context, username string, messages []mailboxdomain.Message) ([]mailboxdomain.Message, []mailboxdomain.Label, error) {
	gen := u.store.Begin(username, state.CategoryClassify)

	payload := make([]enron.ClassifyItem, len(messages))
	for i, m := range messages {
		payload[i] = enron.ClassifyItem{
			ID:            m.ID,
			Subject:       m.Subject,
			Body:          m.Content,
			Sender:        m.Sender,
			HasAttachment: m.HasAttachments,
			NumRecipients: 1,
			TimeSent:      m.RawTime,
		}
	}

	results, err := u.client.ClassifyBatch(ctx, payload)
	if err != nil {
		return nil, nil, err
	}
	if u.store.Stale(username, state.CategoryClassify, gen) {
		return nil, nil, errSuperseded
	}

	merged, labels := MergeClassification(messages, results)
	return merged, labels, nil
}

// CurrentView returns the last committed snapshot for a session.
func (u *mailboxUsecase) CurrentView(username string) (state.View, bool) {
	return u.store.Current(username)
}

// UpdateStatus applies a status patch optimistically: the local store
// is updated first and the upstream sync runs fire-and-forget. An
// upstream failure is logged, never rolled back.
func (u *mailboxUsecase) UpdateStatus(ctx context.Context, username string, emailID int, patch mailboxdomain.StatusPatch) (*mailboxdomain.EmailStatus, error) {
	status, err := u.statusRepo.GetStatus(username, emailID)
	if err != nil {
		return nil, fmt.Errorf("load status: %w", err)
	}
	if status == nil {
		status = &mailboxdomain.EmailStatus{
			Username: username,
			EmailID:  emailID,
			Priority: mailboxdomain.PriorityNormal,
		}
	}
	patch.Apply(status)

	if err := u.statusRepo.SaveStatus(status); err != nil {
		return nil, fmt.Errorf("save status: %w", err)
	}

	u.store.UpdateMessage(username, emailID, func(m *mailboxdomain.Message) {
		m.Read = status.Read
		m.Starred = status.Starred
		m.Flagged = status.Flagged
	})

	go func(s mailboxdomain.EmailStatus) {
		syncCtx, cancel := context.WithTimeout(context.Background(), statusSyncTimeout)
		defer cancel()
		err := u.client.SyncStatus(syncCtx, emailID, enron.StatusPatch{
			Read:     patch.Read,
			Starred:  patch.Starred,
			Flagged:  patch.Flagged,
			Deleted:  patch.Deleted,
			Archived: patch.Archived,
		})
		if err != nil {
			u.logger.Warn("status sync to backend failed",
				"username", s.Username, "email_id", s.EmailID, "error", err)
		}
	}(*status)

	return status, nil
}

// Summarize returns the cached summary when one exists, otherwise asks
// the provider chain and caches the result.
func (u *mailboxUsecase) Summarize(ctx context.Context, username string, emailID int, emailText string) (string, error) {
	if emailText == "" {
		return "", ErrNoContent
	}
	if u.aiService == nil {
		return "", fmt.Errorf("summarization not available")
	}

	cached, err := u.summaryRepo.GetSummary(username, emailID)
	if err != nil {
		u.logger.Warn("summary cache lookup failed", "error", err)
	} else if cached != nil {
		return cached.Summary, nil
	}

	if len(emailText) > maxSummaryInput {
		emailText = emailText[:maxSummaryInput]
	}

	summary, err := u.aiService.Summarize(ctx, emailText, 3)
	if err != nil {
		return "", fmt.Errorf("summarize email %d: %w", emailID, err)
	}

	if err := u.summaryRepo.SaveSummary(username, emailID, summary); err != nil {
		u.logger.Warn("summary cache store failed", "error", err)
	}
	return summary, nil
}

// ExtractEntities proxies named-entity recognition for one message.
func (u *mailboxUsecase) ExtractEntities(ctx context.Context, emailID int, emailText string) (map[string][]string, error) {
	if emailText == "" {
		return nil, ErrNoContent
	}
	entities, err := u.client.ExtractEntities(ctx, enron.EntitiesRequest{
		EmailText: emailText,
		EmailID:   emailID,
	})
	if err != nil {
		return nil, fmt.Errorf("extract entities for email %d: %w", emailID, err)
	}
	return entities, nil
}

// GenerateReply drafts a reply through the provider chain.
func (u *mailboxUsecase) GenerateReply(ctx context.Context, req ai.ReplyRequest) (string, error) {
	if req.Content == "" {
		return "", ErrNoContent
	}
	if u.aiService == nil {
		return "", fmt.Errorf("reply generation not available")
	}
	if req.Model == "" {
		req.Model = u.defaultModel
	}
	if req.Temperature <= 0 {
		req.Temperature = u.defaultTemperature
	}
	return u.aiService.GenerateReply(ctx, req)
}

// SearchSuggestions offers sender/subject completions from the current
// snapshot, ranked by fuzzy relevance.
func (u *mailboxUsecase) SearchSuggestions(username, query string, limit int) []string {
	if query == "" {
		return []string{}
	}
	if limit <= 0 {
		limit = 5
	}
	if limit > 10 {
		limit = 10
	}

	view, ok := u.store.Current(username)
	if !ok {
		return []string{}
	}

	type scored struct {
		text  string
		score float64
	}
	threshold := fuzzy.Threshold(query)
	var candidates []scored
	seen := make(map[string]bool)
	add := func(text string) {
		if text == "" || seen[text] {
			return
		}
		if !fuzzy.Match(query, text, threshold) {
			return
		}
		seen[text] = true
		candidates = append(candidates, scored{text: text, score: fuzzy.RelevanceScore(query, text, "")})
	}
	for _, m := range view.Messages {
		add(m.Sender)
		add(m.Subject)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	suggestions := make([]string, 0, limit)
	for _, c := range candidates {
		if len(suggestions) >= limit {
			break
		}
		suggestions = append(suggestions, c.text)
	}
	return suggestions
}
