package service

import (
	"context"
	"time"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	"github.com/lucky-arya/CSIxMKITOS/internal/auth/models"
	"github.com/lucky-arya/CSIxMKITOS/internal/auth/token"
)

// SessionStore defines the persistence interface for admin sessions.
// Error Contract: FindByID returns an error wrapping sentinel.ErrNotFound
// when the session doesn't exist.
type SessionStore interface {
	Create(ctx context.Context, session *models.AdminSession) error
	FindByID(ctx context.Context, sessionID string) (*models.AdminSession, error)
	Update(ctx context.Context, session *models.AdminSession) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// TokenService signs and validates the JWT carried by the session cookie.
type TokenService interface {
	Generate(sessionID, username string, now time.Time) (string, error)
	Validate(tokenString string) (*token.SessionClaims, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}
