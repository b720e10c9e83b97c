package enron

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(Config{BaseURL: server.URL, Timeout: 5 * time.Second})
	return client, server
}

func TestClientUsers(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		json.NewEncoder(w).Encode([]User{{ID: 1, Username: "kay-mann"}})
	}))
	defer server.Close()

	users, err := client.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "kay-mann", users[0].Username)
}

func TestClientFolderEmailsEscapesPath(t *testing.T) {
	var gotPath string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode([]RawEmail{{ID: 1, Subject: "s"}})
	}))
	defer server.Close()

	_, err := client.FolderEmails(context.Background(), "kay-mann", "all documents")
	require.NoError(t, err)
	assert.Equal(t, "/users/kay-mann/folders/all%20documents/emails", gotPath)
}

func TestClientFolderEmailsNullBodyIsMalformed(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	}))
	defer server.Close()

	_, err := client.FolderEmails(context.Background(), "kay", "inbox")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestClientSearchMissingResultsIsMalformed(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	_, err := client.Search(context.Background(), SearchRequest{Query: "q"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestClientSearchSendsRequestShape(t *testing.T) {
	var got SearchRequest
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(SearchResponse{Results: []RawEmail{}})
	}))
	defer server.Close()

	results, err := client.Search(context.Background(), SearchRequest{
		Query:        "budget",
		Username:     "kay",
		Folder:       "inbox",
		SearchFields: []string{"subject", "body"},
		MaxResults:   100,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, "budget", got.Query)
	assert.Equal(t, []string{"subject", "body"}, got.SearchFields)
	assert.Equal(t, 100, got.MaxResults)
}

func TestClientAPIError(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := client.Users(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestClientRespondFailure(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(RespondResponse{Success: false, Error: "model unavailable"})
	}))
	defer server.Close()

	_, err := client.Respond(context.Background(), RespondRequest{Content: "c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestClientSyncStatusPatchBody(t *testing.T) {
	var gotPath string
	var got StatusPatch
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	read := true
	err := client.SyncStatus(context.Background(), 42, StatusPatch{Read: &read})
	require.NoError(t, err)
	assert.Equal(t, "/emails/42/status", gotPath)
	require.NotNil(t, got.Read)
	assert.True(t, *got.Read)
	assert.Nil(t, got.Starred)
}
