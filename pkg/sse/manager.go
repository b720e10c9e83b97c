package sse

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

// Event is one server-sent event addressed to a user.
type Event struct {
	UserID string
	Name   string
	Data   interface{}
}

type client struct {
	userID string
	ch     chan Event
}

// Manager fans out server-sent events to connected clients. Summary
// workers use it to push "summary_update" events as background jobs
// complete.
type Manager struct {
	register   chan *client
	unregister chan *client
	events     chan Event
	clients    map[string]map[*client]struct{}
}

// NewManager creates an SSE manager. Call Run in a goroutine before
// serving connections.
func NewManager() *Manager {
	return &Manager{
		register:   make(chan *client),
		unregister: make(chan *client),
		events:     make(chan Event, 256),
		clients:    make(map[string]map[*client]struct{}),
	}
}

// Run owns the client table; all mutation happens on this goroutine.
func (m *Manager) Run() {
	for {
		select {
		case c := <-m.register:
			if m.clients[c.userID] == nil {
				m.clients[c.userID] = make(map[*client]struct{})
			}
			m.clients[c.userID][c] = struct{}{}
		case c := <-m.unregister:
			if set, ok := m.clients[c.userID]; ok {
				if _, ok := set[c]; ok {
					delete(set, c)
					close(c.ch)
					if len(set) == 0 {
						delete(m.clients, c.userID)
					}
				}
			}
		case ev := <-m.events:
			for c := range m.clients[ev.UserID] {
				select {
				case c.ch <- ev:
				default:
					// Slow consumer, drop the event rather than block.
				}
			}
		}
	}
}

// SendToUser queues an event for every connection of one user.
func (m *Manager) SendToUser(userID, name string, data interface{}) {
	select {
	case m.events <- Event{UserID: userID, Name: name, Data: data}:
	default:
	}
}

// ServeHTTP streams events to one connection until the client goes away.
func (m *Manager) ServeHTTP(c *gin.Context, userID string) {
	cl := &client{userID: userID, ch: make(chan Event, 16)}
	m.register <- cl
	defer func() { m.unregister <- cl }()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-cl.ch:
			if !ok {
				return false
			}
			payload, err := json.Marshal(ev.Data)
			if err != nil {
				return true
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
