package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/gocarina/gocsv"

	"github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
)

// InMemoryStore keeps the roster in memory. It mirrors the file store's
// semantics and doubles as the test fixture.
type InMemoryStore struct {
	mu       sync.RWMutex
	students []models.Student
}

// NewMemory constructs an empty in-memory roster store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) List(_ context.Context) ([]models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Student, len(s.students))
	copy(out, s.students)
	return out, nil
}

func (s *InMemoryStore) FindByKey(_ context.Context, name, email string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := models.MatchKey(name, email)
	for _, st := range s.students {
		if st.Key() == key {
			found := st
			return &found, nil
		}
	}
	return nil, fmt.Errorf("student not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) Append(_ context.Context, student models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := student.Key()
	for _, st := range s.students {
		if st.Key() == key {
			return fmt.Errorf("student already on roster: %w", sentinel.ErrAlreadyExists)
		}
	}
	s.students = append(s.students, student)
	return nil
}

func (s *InMemoryStore) ReplaceAll(_ context.Context, students []models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.students = make([]models.Student, len(students))
	copy(s.students, students)
	return nil
}

func (s *InMemoryStore) ExportCSV(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]rosterRow, 0, len(s.students))
	for _, st := range s.students {
		rows = append(rows, rosterRow{
			Name:        st.Name,
			Email:       st.Email,
			Eligibility: st.Eligibility,
		})
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("encode roster: %w", err)
	}
	return data, nil
}

var _ Store = (*InMemoryStore)(nil)
