package store

import (
	"context"

	"github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
)

// Store persists the student roster.
//
// Error Contract:
// All store methods follow this error pattern:
// - Return sentinel.ErrNotFound (wrapped) when no student matches the key
// - Return sentinel.ErrAlreadyExists (wrapped) when appending a duplicate key
// - Return sentinel.ErrMalformed (wrapped) when the backing data cannot be parsed
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures
type Store interface {
	// List returns every roster entry in file order. A missing backing file
	// is an empty roster, not an error.
	List(ctx context.Context) ([]models.Student, error)

	// FindByKey looks a student up by the normalized (name, email) key.
	FindByKey(ctx context.Context, name, email string) (*models.Student, error)

	// Append adds one student, rejecting normalized duplicates.
	Append(ctx context.Context, student models.Student) error

	// ReplaceAll atomically swaps the whole roster for the given entries.
	// Passing an empty slice resets the roster to its bootstrap state.
	ReplaceAll(ctx context.Context, students []models.Student) error

	// ExportCSV returns the roster as a CSV document, exactly as persisted.
	// A missing backing file yields the header-only bootstrap document.
	ExportCSV(ctx context.Context) ([]byte, error)
}
