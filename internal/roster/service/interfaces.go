package service

import (
	"context"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	"github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
)

// RosterStore persists the student roster.
//
// Error Contract:
// All store methods follow this error pattern:
// - Return sentinel.ErrAlreadyExists (wrapped) when appending a duplicate key
// - Return sentinel.ErrMalformed (wrapped) when the backing data cannot be parsed
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures
type RosterStore interface {
	List(ctx context.Context) ([]models.Student, error)
	Append(ctx context.Context, student models.Student) error
	ReplaceAll(ctx context.Context, students []models.Student) error
	ExportCSV(ctx context.Context) ([]byte, error)
}

// AuditPublisher records roster changes in the audit trail.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
