package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/lucky-arya/CSIxMKITOS/internal/certificate/models"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
)

// InMemoryStore keeps references in a map. Used in tests and anywhere a
// throwaway store is enough.
type InMemoryStore struct {
	mu   sync.RWMutex
	refs map[string]models.Reference
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{refs: make(map[string]models.Reference)}
}

func (s *InMemoryStore) All(ctx context.Context) ([]models.Reference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.refs), nil
}

func (s *InMemoryStore) FindByID(ctx context.Context, id string) (*models.Reference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, ok := s.refs[id]
	if !ok {
		return nil, fmt.Errorf("reference %s: %w", id, sentinel.ErrNotFound)
	}
	return &ref, nil
}

func (s *InMemoryStore) FindByStudent(ctx context.Context, name, email string) (*models.Reference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ref := range s.refs {
		if ref.MatchesStudent(name, email) {
			found := ref
			return &found, nil
		}
	}
	return nil, fmt.Errorf("no reference for student: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) Save(ctx context.Context, ref models.Reference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refs[ref.ID] = ref
	return nil
}

func (s *InMemoryStore) MarkDownloaded(ctx context.Context, id string, now time.Time) (*models.Reference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, ok := s.refs[id]
	if !ok {
		return nil, fmt.Errorf("reference %s: %w", id, sentinel.ErrNotFound)
	}

	stamp := now.UTC()
	ref.Downloaded = true
	ref.DownloadCount++
	ref.LastDownload = &stamp
	s.refs[id] = ref
	return &ref, nil
}

func (s *InMemoryStore) ReplaceAll(ctx context.Context, refs []models.Reference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refs = make(map[string]models.Reference, len(refs))
	for _, ref := range refs {
		s.refs[ref.ID] = ref
	}
	return nil
}

func (s *InMemoryStore) ExportJSON(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.MarshalIndent(s.refs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode references: %w", err)
	}
	return data, nil
}

var _ Store = (*InMemoryStore)(nil)
