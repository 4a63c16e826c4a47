package store

import (
	"context"
	"time"

	"github.com/lucky-arya/CSIxMKITOS/internal/certificate/models"
)

// Store persists issued certificate references keyed by reference ID.
//
// Error Contract:
// All store methods follow this error pattern:
// - Return sentinel.ErrNotFound (wrapped) when no reference matches the ID or student
// - Return sentinel.ErrMalformed (wrapped) when the backing data cannot be parsed
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures
type Store interface {
	// All returns every stored reference. A missing backing file is an empty
	// store, not an error. Order is not defined.
	All(ctx context.Context) ([]models.Reference, error)

	// FindByID looks a reference up by its exact ID.
	FindByID(ctx context.Context, id string) (*models.Reference, error)

	// FindByStudent returns the first reference whose snapshot matches the
	// normalized (name, email) pair. With duplicates present the pick is
	// arbitrary; reconciliation is the repair path.
	FindByStudent(ctx context.Context, name, email string) (*models.Reference, error)

	// Save inserts or overwrites one reference under its ID.
	Save(ctx context.Context, ref models.Reference) error

	// MarkDownloaded flips the downloaded flag, increments the download count
	// and stamps the download time on one reference, all under the store's
	// write lock. An unknown ID leaves the file untouched. Returns the
	// updated reference.
	MarkDownloaded(ctx context.Context, id string, now time.Time) (*models.Reference, error)

	// ReplaceAll atomically swaps the whole reference map for the given
	// entries. Passing an empty slice resets the store to its bootstrap state.
	ReplaceAll(ctx context.Context, refs []models.Reference) error

	// ExportJSON returns the reference map as a JSON document, exactly as
	// persisted. A missing backing file yields an empty JSON object.
	ExportJSON(ctx context.Context) ([]byte, error)
}
