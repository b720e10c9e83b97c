package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailboxdomain "github.com/NoamFav/EnronBox/internal/mailbox/domain"
	"github.com/NoamFav/EnronBox/internal/mailbox/state"
	"github.com/NoamFav/EnronBox/internal/mailbox/usecase"
	"github.com/NoamFav/EnronBox/pkg/ai"
	"github.com/NoamFav/EnronBox/pkg/enron"
)

// stubUsecase lets each test pin the behavior of one operation.
type stubUsecase struct {
	usersRet    []enron.User
	usersErr    error
	foldersRet  []string
	fetchRet    state.View
	fetchErr    error
	fetchOpts   mailboxdomain.FilterOptions
	fetchQuery  string
	statusRet   *mailboxdomain.EmailStatus
	summaryRet  string
	summaryErr  error
	replyRet    string
	replyErr    error
	suggestions []string
}

func (s *stubUsecase) Users(ctx context.Context) ([]enron.User, error) {
	return s.usersRet, s.usersErr
}

func (s *stubUsecase) Folders(ctx context.Context, username string) ([]string, error) {
	return s.foldersRet, nil
}

func (s *stubUsecase) FetchMailbox(ctx context.Context, username, folder, query string, opts mailboxdomain.FilterOptions) (state.View, error) {
	s.fetchQuery = query
	s.fetchOpts = opts
	return s.fetchRet, s.fetchErr
}

func (s *stubUsecase) CurrentView(username string) (state.View, bool) {
	return s.fetchRet, true
}

func (s *stubUsecase) UpdateStatus(ctx context.Context, username string, emailID int, patch mailboxdomain.StatusPatch) (*mailboxdomain.EmailStatus, error) {
	return s.statusRet, nil
}

func (s *stubUsecase) Summarize(ctx context.Context, username string, emailID int, emailText string) (string, error) {
	return s.summaryRet, s.summaryErr
}

func (s *stubUsecase) ExtractEntities(ctx context.Context, emailID int, emailText string) (map[string][]string, error) {
	return map[string][]string{"PERSON": {"Kay Mann"}}, nil
}

func (s *stubUsecase) GenerateReply(ctx context.Context, req ai.ReplyRequest) (string, error) {
	return s.replyRet, s.replyErr
}

func (s *stubUsecase) SearchSuggestions(username, query string, limit int) []string {
	return s.suggestions
}

func (s *stubUsecase) SetAIService(svc ai.Service) {}

func newTestRouter(stub *stubUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewMailboxHandler(stub)
	r.GET("/users", h.GetUsers)
	r.GET("/users/:username/folders/:folder/emails", h.GetFolderEmails)
	r.POST("/emails/:id/status", h.UpdateStatus)
	r.POST("/emails/:id/summary", h.SummarizeEmail)
	r.POST("/respond", h.GenerateReply)
	r.GET("/search/suggestions", h.GetSearchSuggestions)
	return r
}

func TestGetUsersBadGateway(t *testing.T) {
	stub := &stubUsecase{usersErr: errors.New("backend down")}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetFolderEmailsParsesOptions(t *testing.T) {
	stub := &stubUsecase{fetchRet: state.View{Folder: "inbox", Messages: []mailboxdomain.Message{}}}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/users/kay/folders/inbox/emails?q=budget&unread_only=true&has_attachments=true&sort_by=sender&label=Work", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "budget", stub.fetchQuery)
	assert.True(t, stub.fetchOpts.UnreadOnly)
	assert.True(t, stub.fetchOpts.HasAttachments)
	assert.Equal(t, mailboxdomain.SortBySender, stub.fetchOpts.SortBy)
	assert.Equal(t, "Work", stub.fetchOpts.ByLabel)
}

func TestGetFolderEmailsDefaultsToDateSort(t *testing.T) {
	stub := &stubUsecase{fetchRet: state.View{}}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/kay/folders/inbox/emails", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, mailboxdomain.SortByDate, stub.fetchOpts.SortBy)
	assert.False(t, stub.fetchOpts.UnreadOnly)
}

func TestGetFolderEmailsUpstreamFailureStillRendersView(t *testing.T) {
	stub := &stubUsecase{
		fetchRet: state.View{
			Messages: []mailboxdomain.Message{},
			Labels:   []mailboxdomain.Label{},
			Warnings: []string{"failed to load emails"},
		},
		fetchErr: errors.New("bad gateway"),
	}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/kay/folders/inbox/emails", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	// The payload keeps the empty-but-functional view shape.
	assert.NotNil(t, body["messages"])
	assert.Equal(t, "bad gateway", body["error"])
}

func TestUpdateStatusRequiresUsername(t *testing.T) {
	r := newTestRouter(&stubUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/emails/1/status", bytes.NewBufferString(`{"read":true}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusInvalidID(t *testing.T) {
	r := newTestRouter(&stubUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/emails/abc/status?username=kay", bytes.NewBufferString(`{"read":true}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusOK(t *testing.T) {
	stub := &stubUsecase{
		statusRet: &mailboxdomain.EmailStatus{Username: "kay", EmailID: 1, Read: true, Priority: mailboxdomain.PriorityNormal},
	}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/emails/1/status?username=kay", bytes.NewBufferString(`{"read":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var status mailboxdomain.EmailStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Read)
}

func TestSummarizeEmailNoContent(t *testing.T) {
	stub := &stubUsecase{summaryErr: usecase.ErrNoContent}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/emails/1/summary?username=kay", bytes.NewBufferString(`{"email_text":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummarizeEmailDegraded(t *testing.T) {
	stub := &stubUsecase{summaryErr: errors.New("all providers down")}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/emails/1/summary?username=kay", bytes.NewBufferString(`{"email_text":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGenerateReply(t *testing.T) {
	stub := &stubUsecase{replyRet: "Thanks, will do."}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/respond", bytes.NewBufferString(`{"content":"please advise","subject":"s","sender":"a@enron.com"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Thanks, will do.", body["reply"])
}

func TestGetSearchSuggestions(t *testing.T) {
	stub := &stubUsecase{suggestions: []string{"budget review", "budget draft"}}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/search/suggestions?username=kay&q=budget", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"budget review", "budget draft"}, body["suggestions"])
}
