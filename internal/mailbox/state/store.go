// Package state holds the in-memory mailbox view state, the Go
// counterpart of a UI-side reducer store. Each user session keeps one
// snapshot of the last committed view; per-category generation counters
// make sure a slow response can never overwrite the result of a request
// issued after it.
package state

import (
	"sync"

	mailboxdomain "github.com/NoamFav/EnronBox/internal/mailbox/domain"
)

// Category identifies an independent fetch pipeline. Each category has
// its own generation counter: a folder fetch must not invalidate an
// in-flight search and vice versa.
type Category int

const (
	CategoryFolder Category = iota
	CategoryClassify
	CategorySearch
	categoryCount
)

// View is one committed mailbox snapshot.
type View struct {
	Folder   string                  `json:"folder"`
	Query    string                  `json:"query,omitempty"`
	Messages []mailboxdomain.Message `json:"messages"`
	Labels   []mailboxdomain.Label   `json:"labels"`
	Total    int                     `json:"total"`
	Warnings []string                `json:"warnings,omitempty"`
}

type session struct {
	view View
	gens [categoryCount]uint64
}

// Store keeps the current view per session. All methods are safe for
// concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
}

// NewStore creates an empty view store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*session)}
}

func (s *Store) session(key string) *session {
	if sess, ok := s.sessions[key]; ok {
		return sess
	}
	sess := &session{}
	s.sessions[key] = sess
	return sess
}

// Begin registers a new in-flight fetch for the category and returns
// its generation token. Any fetch issued earlier for the same category
// becomes stale.
func (s *Store) Begin(key string, cat Category) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(key)
	sess.gens[cat]++
	return sess.gens[cat]
}

// Commit applies a completed fetch if it is still the latest one for
// its category. Returns false when the result was discarded as stale.
func (s *Store) Commit(key string, cat Category, gen uint64, view View) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(key)
	if gen != sess.gens[cat] {
		return false
	}
	sess.view = view
	return true
}

// Stale reports whether a newer fetch for the category has been issued
// since the given token was taken.
func (s *Store) Stale(key string, cat Category, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen != s.session(key).gens[cat]
}

// Current returns the last committed view for a session.
func (s *Store) Current(key string) (View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok {
		return View{}, false
	}
	return sess.view, true
}

// UpdateMessage mutates a single message in place by id, the analog of
// a reducer's UPDATE_EMAIL action. No-op when the id is not present.
func (s *Store) UpdateMessage(key string, emailID int, update func(*mailboxdomain.Message)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok {
		return
	}
	for i := range sess.view.Messages {
		if sess.view.Messages[i].ID == emailID {
			update(&sess.view.Messages[i])
			return
		}
	}
}

// Drop removes a session snapshot entirely.
func (s *Store) Drop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
}
