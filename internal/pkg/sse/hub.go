package sse

import (
	"log/slog"
	"sync"
)

// Event is one message pushed to a browser session
type Event struct {
	SessionID string
	Event     string
	Data      interface{}
}

// Hub fans events out to the streams open for each session
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	buffer      int
}

// NewHub creates a hub whose subscriber channels hold buffer pending events
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 32
	}
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		buffer:      buffer,
	}
}

// Subscribe opens a stream for a session and returns its channel and cleanup function
func (h *Hub) Subscribe(sessionID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)

	if h.subscribers[sessionID] == nil {
		h.subscribers[sessionID] = make(map[chan Event]struct{})
	}
	h.subscribers[sessionID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if subs, ok := h.subscribers[sessionID]; ok {
				if _, ok := subs[ch]; ok {
					delete(subs, ch)
					close(ch)
				}
				if len(subs) == 0 {
					delete(h.subscribers, sessionID)
				}
			}
		})
	}

	return ch, cleanup
}

// Publish sends an event to every stream of a session.
// A stream too far behind to take the event is closed; the browser
// reconnects and the new stream starts with a full resync.
func (h *Hub) Publish(sessionID string, event Event) {
	event.SessionID = sessionID

	var lagging []chan Event
	h.mu.RLock()
	for ch := range h.subscribers[sessionID] {
		select {
		case ch <- event:
		default:
			lagging = append(lagging, ch)
		}
	}
	h.mu.RUnlock()

	if len(lagging) > 0 {
		h.close(sessionID, lagging)
	}
}

func (h *Hub) close(sessionID string, chans []chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.subscribers[sessionID]
	for _, ch := range chans {
		if _, ok := subs[ch]; ok {
			delete(subs, ch)
			close(ch)
			slog.Warn("Closed lagging event stream", "session_id", sessionID)
		}
	}
	if len(subs) == 0 {
		delete(h.subscribers, sessionID)
	}
}

// Drop closes every stream of a session
func (h *Hub) Drop(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers[sessionID] {
		close(ch)
	}
	delete(h.subscribers, sessionID)
}

// SubscriberCount returns the number of open streams for a session
func (h *Hub) SubscriberCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[sessionID])
}

// TotalSubscribers returns the number of open streams across all sessions
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
