package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lucky-arya/CSIxMKITOS/internal/auth/models"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
)

// InMemoryStore stores admin sessions in memory. It is the default backend;
// sessions do not survive a process restart.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.AdminSession
}

// New constructs an empty in-memory session store.
func New() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*models.AdminSession)}
}

func (s *InMemoryStore) Create(_ context.Context, session *models.AdminSession) error {
	if session == nil {
		return fmt.Errorf("session is required: %w", sentinel.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, sessionID string) (*models.AdminSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if session, ok := s.sessions[sessionID]; ok {
		return session, nil
	}
	return nil, fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) Update(_ context.Context, session *models.AdminSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		return fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
	}
	s.sessions[session.ID] = session
	return nil
}

// DeleteExpired removes all sessions that have expired as of the given time.
// The time parameter is injected for testability (no hidden time.Now() calls).
func (s *InMemoryStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deletedCount := 0
	for id, session := range s.sessions {
		if session.ExpiresAt.Before(now) {
			delete(s.sessions, id)
			deletedCount++
		}
	}

	return deletedCount, nil
}

var _ Store = (*InMemoryStore)(nil)
