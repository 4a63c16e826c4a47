package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// This file contains pure domain models for admin authentication: entities
// that should not depend on transport or HTTP-specific concerns.

// SessionCookieName is the cookie carrying the signed admin session token.
const SessionCookieName = "admin_session"

// SessionStatus captures the lifecycle state of an admin session.
type SessionStatus string

const (
	SessionStatusActive  SessionStatus = "active"
	SessionStatusRevoked SessionStatus = "revoked"
)

// AdminSession represents an authenticated admin session and its lifecycle state.
type AdminSession struct {
	ID       string
	Username string
	Status   SessionStatus

	CreatedAt  time.Time
	ExpiresAt  time.Time
	LastSeenAt time.Time
	RevokedAt  *time.Time
}

// NewAdminSession creates an active session for the given admin username.
func NewAdminSession(username string, now time.Time, ttl time.Duration) *AdminSession {
	return &AdminSession{
		ID:         uuid.NewString(),
		Username:   username,
		Status:     SessionStatusActive,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
		LastSeenAt: now,
	}
}

func (s *AdminSession) IsRevoked() bool {
	return s.Status == SessionStatusRevoked
}

func (s *AdminSession) IsExpired(at time.Time) bool {
	return at.After(s.ExpiresAt)
}

// IsActive reports whether the session can authenticate requests at the given time.
func (s *AdminSession) IsActive(at time.Time) bool {
	return !s.IsRevoked() && !s.IsExpired(at)
}

// Revoke transitions the session to revoked state.
// Returns true if the transition occurred, false if already revoked.
func (s *AdminSession) Revoke(at time.Time) bool {
	if s.IsRevoked() {
		return false
	}
	s.Status = SessionStatusRevoked
	if s.RevokedAt == nil || at.After(*s.RevokedAt) {
		s.RevokedAt = &at
	}
	return true
}

// RecordActivity updates the session's last seen time if the given time is after the current value.
func (s *AdminSession) RecordActivity(at time.Time) {
	if at.After(s.LastSeenAt) {
		s.LastSeenAt = at
	}
}

// ValidateAt checks that the session may authenticate a request at the given time.
// Returns nil if valid, or an error describing the validation failure.
func (s *AdminSession) ValidateAt(at time.Time) error {
	if s.IsRevoked() {
		return dErrors.New(dErrors.CodeUnauthorized, "session has been revoked")
	}
	if s.IsExpired(at) {
		return dErrors.New(dErrors.CodeUnauthorized, "session has expired")
	}
	return nil
}
