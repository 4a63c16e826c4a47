package service

import (
	"context"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	"github.com/lucky-arya/CSIxMKITOS/pkg/requestcontext"
)

// Observability helpers for logging, auditing, and metrics.
// These methods are on *Service to access logger, auditPublisher, and metrics.

func (s *Service) logAudit(ctx context.Context, event, actor, subject string, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, event, args...)
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		Actor:     actor,
		Subject:   subject,
		Action:    event,
		RequestID: requestID,
		ClientIP:  requestcontext.ClientIP(ctx),
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event", "error", err)
	}
}

func (s *Service) authFailure(ctx context.Context, reason string, isError bool, attributes ...any) {
	s.logAuthFailure(ctx, reason, isError, attributes)
	s.emitAuthFailure(ctx, reason)
	if s.metrics != nil {
		s.metrics.IncrementAuthFailures()
	}
}

func (s *Service) logAuthFailure(ctx context.Context, reason string, isError bool, attributes []any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", audit.EventAuthFailed, "reason", reason, "log_type", "standard")
	if isError {
		s.logger.ErrorContext(ctx, string(audit.EventAuthFailed), args...)
		return
	}
	s.logger.WarnContext(ctx, string(audit.EventAuthFailed), args...)
}

// emitAuthFailure records auth failures in the audit trail so lockout policy
// and incident review have a persistent record.
func (s *Service) emitAuthFailure(ctx context.Context, reason string) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		Action:    string(audit.EventAuthFailed),
		Decision:  "denied",
		Reason:    reason,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
	}); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit auth failure audit event", "error", err)
	}
}

// incrementActiveSessions adjusts the active sessions gauge if metrics are enabled
func (s *Service) incrementActiveSessions(count int) {
	if s.metrics != nil {
		s.metrics.IncrementActiveSessions(count)
	}
}

// decrementActiveSessions adjusts the active sessions gauge if metrics are enabled
func (s *Service) decrementActiveSessions(count int) {
	if s.metrics != nil {
		s.metrics.DecrementActiveSessions(count)
	}
}
