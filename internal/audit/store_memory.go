package audit

import (
	"context"
	"sync"
)

// maxRetainedEvents caps the in-memory trail. Older events are discarded
// once the cap is reached.
const maxRetainedEvents = 1000

type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) > maxRetainedEvents {
		s.events = s.events[len(s.events)-maxRetainedEvents:]
	}
	return nil
}

// ListRecent returns up to limit events, newest first. A non-positive limit
// returns the full retained trail.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.events)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Event, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}

var _ Store = (*InMemoryStore)(nil)
