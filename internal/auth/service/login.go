package service

import (
	"context"
	"time"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	"github.com/lucky-arya/CSIxMKITOS/internal/auth/models"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// Login verifies the admin credentials and opens a new session. On success it
// returns the session and a signed token for the session cookie.
func (s *Service) Login(ctx context.Context, username, password string) (*models.AdminSession, string, error) {
	if !s.creds.match(username, password) {
		s.authFailure(ctx, "invalid_credentials", false, "username", username)
		return nil, "", dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")
	}

	now := time.Now()
	session := models.NewAdminSession(s.creds.Username, now, s.sessionTTL)
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	signed, err := s.tokens.Generate(session.ID, session.Username, now)
	if err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign session token")
	}

	// Opportunistic sweep keeps the store from accumulating dead sessions.
	if removed, err := s.sessions.DeleteExpired(ctx, now); err != nil {
		s.logger.WarnContext(ctx, "failed to sweep expired sessions", "error", err)
	} else if removed > 0 {
		s.decrementActiveSessions(removed)
	}

	s.logAudit(ctx, string(audit.EventAdminLogin), session.Username, session.ID,
		"session_id", session.ID,
	)
	s.incrementActiveSessions(1)

	return session, signed, nil
}
