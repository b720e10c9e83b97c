package usecase

import (
	"context"

	mailboxdomain "github.com/NoamFav/EnronBox/internal/mailbox/domain"
	"github.com/NoamFav/EnronBox/internal/mailbox/state"
	"github.com/NoamFav/EnronBox/pkg/ai"
	"github.com/NoamFav/EnronBox/pkg/enron"
)

// MailboxUsecase defines the interface for mailbox view operations
type MailboxUsecase interface {
	Users(ctx context.Context) ([]enron.User, error)
	Folders(ctx context.Context, username string) ([]string, error)

	// FetchMailbox runs the full view pipeline for one folder (or one
	// search when query is non-empty) and commits the result to the
	// session view store.
	FetchMailbox(ctx context.Context, username, folder, query string, opts mailboxdomain.FilterOptions) (state.View, error)
	CurrentView(username string) (state.View, bool)

	UpdateStatus(ctx context.Context, username string, emailID int, patch mailboxdomain.StatusPatch) (*mailboxdomain.EmailStatus, error)
	Summarize(ctx context.Context, username string, emailID int, emailText string) (string, error)
	ExtractEntities(ctx context.Context, emailID int, emailText string) (map[string][]string, error)
	GenerateReply(ctx context.Context, req ai.ReplyRequest) (string, error)
	SearchSuggestions(username, query string, limit int) []string

	SetAIService(svc ai.Service)
}
