package service

import (
	"context"
	"time"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	"github.com/lucky-arya/CSIxMKITOS/internal/certificate/models"
	rostermodels "github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
)

// ReferenceStore persists issued certificate references.
//
// Error Contract:
// All store methods follow this error pattern:
// - Return sentinel.ErrNotFound (wrapped) when no reference matches the ID or student
// - Return sentinel.ErrMalformed (wrapped) when the backing data cannot be parsed
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures
type ReferenceStore interface {
	All(ctx context.Context) ([]models.Reference, error)
	FindByID(ctx context.Context, id string) (*models.Reference, error)
	FindByStudent(ctx context.Context, name, email string) (*models.Reference, error)
	Save(ctx context.Context, ref models.Reference) error
	MarkDownloaded(ctx context.Context, id string, now time.Time) (*models.Reference, error)
	ReplaceAll(ctx context.Context, refs []models.Reference) error
	ExportJSON(ctx context.Context) ([]byte, error)
}

// StudentDirectory answers whether a (name, email) pair is on the roster.
// The roster file store satisfies this directly.
//
// Error Contract:
// - Return sentinel.ErrNotFound (wrapped) when no student matches the key
// - Return sentinel.ErrMalformed (wrapped) when the backing data cannot be parsed
type StudentDirectory interface {
	FindByKey(ctx context.Context, name, email string) (*rostermodels.Student, error)
}

// AuditPublisher records certificate lifecycle events in the audit trail.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
