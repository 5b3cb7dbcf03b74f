package view

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sessions keeps one Controller per browser session.
type Sessions struct {
	mu          sync.Mutex
	controllers map[string]*Controller

	newController func(id string) *Controller
	onEvict       func(id string)
	idleTimeout   time.Duration
	now           func() time.Time
}

// NewSessions creates a registry. onEvict runs after a session is dropped, e.g. to close its streams.
func NewSessions(newController func(id string) *Controller, idleTimeout time.Duration, onEvict func(id string)) *Sessions {
	if onEvict == nil {
		onEvict = func(string) {}
	}
	return &Sessions{
		controllers:   make(map[string]*Controller),
		newController: newController,
		onEvict:       onEvict,
		idleTimeout:   idleTimeout,
		now:           time.Now,
	}
}

// GetOrCreate returns the session's controller, creating it when needed.
// created tells the caller the dashboard still needs its initial Load.
func (s *Sessions) GetOrCreate(id string) (c *Controller, created bool) {
	s.mu.Lock()
	c, ok := s.controllers[id]
	if !ok {
		c = s.newController(id)
		s.controllers[id] = c
		slog.Info("Dashboard session opened", "session_id", id)
	}
	s.mu.Unlock()

	c.Touch()
	return c, !ok
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.controllers)
}

func (s *Sessions) list() []*Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Controller, 0, len(s.controllers))
	for _, c := range s.controllers {
		out = append(out, c)
	}
	return out
}

// Poll runs one polling tick on every session, each in its own goroutine.
func (s *Sessions) Poll(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, c := range s.list() {
		wg.Add(1)
		go func(c *Controller) {
			defer wg.Done()
			c.Tick(ctx)
		}(c)
	}
	wg.Wait()
	return nil
}

// EvictIdle drops sessions not seen for longer than the idle timeout.
func (s *Sessions) EvictIdle(ctx context.Context) error {
	cutoff := s.now().Add(-s.idleTimeout)

	var evicted []*Controller
	s.mu.Lock()
	for id, c := range s.controllers {
		if c.LastSeen().Before(cutoff) {
			evicted = append(evicted, c)
			delete(s.controllers, id)
		}
	}
	s.mu.Unlock()

	for _, c := range evicted {
		c.Close()
		s.onEvict(c.ID())
		slog.Info("Dashboard session evicted", "session_id", c.ID())
	}
	return nil
}
