package service

import (
	"context"
	"errors"
	"time"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// Logout revokes the session carried by the token. It is idempotent: a
// missing, invalid, or already revoked session is not an error.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	if tokenString == "" {
		return nil
	}

	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		// Nothing to revoke for a token we cannot trust.
		return nil
	}

	session, err := s.sessions.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to find session")
	}

	if !session.Revoke(time.Now()) {
		return nil
	}
	if err := s.sessions.Update(ctx, session); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke session")
	}

	s.logAudit(ctx, string(audit.EventAdminLogout), session.Username, session.ID,
		"session_id", session.ID,
	)
	s.decrementActiveSessions(1)

	return nil
}
