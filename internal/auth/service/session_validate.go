package service

import (
	"context"
	"errors"
	"time"

	"github.com/lucky-arya/CSIxMKITOS/internal/auth/models"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// ValidateSessionToken authenticates an admin request from its session cookie
// and returns the live session after refreshing its activity timestamp.
func (s *Service) ValidateSessionToken(ctx context.Context, tokenString string) (*models.AdminSession, error) {
	if tokenString == "" {
		s.authFailure(ctx, "missing_token", false)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "missing session token")
	}

	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		s.authFailure(ctx, "invalid_token", false)
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid session token")
	}

	session, err := s.sessions.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.authFailure(ctx, "session_not_found", false,
				"session_id", claims.SessionID,
			)
			return nil, dErrors.New(dErrors.CodeUnauthorized, "session not found")
		}
		s.authFailure(ctx, "session_lookup_failed", true,
			"session_id", claims.SessionID,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find session")
	}

	now := time.Now()
	if err := session.ValidateAt(now); err != nil {
		s.authFailure(ctx, "session_not_active", false,
			"session_id", session.ID,
			"status", string(session.Status),
		)
		return nil, err
	}

	session.RecordActivity(now)
	if err := s.sessions.Update(ctx, session); err != nil {
		// Losing a last-seen update must not fail an otherwise valid request.
		s.logger.WarnContext(ctx, "failed to record session activity",
			"session_id", session.ID,
			"error", err,
		)
	}

	return session, nil
}
