package session

import (
	"context"
	"time"

	"github.com/lucky-arya/CSIxMKITOS/internal/auth/models"
)

// Store persists admin sessions.
//
// Error Contract:
// All store methods follow this error pattern:
// - Return sentinel.ErrNotFound (wrapped) when the requested session does not exist
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures
type Store interface {
	Create(ctx context.Context, session *models.AdminSession) error
	FindByID(ctx context.Context, sessionID string) (*models.AdminSession, error)
	Update(ctx context.Context, session *models.AdminSession) error

	// DeleteExpired removes sessions whose expiry is before the given time and
	// reports how many were removed. Backends with native key expiry may
	// implement this as a no-op.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
