package service

import (
	"context"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	"github.com/lucky-arya/CSIxMKITOS/pkg/requestcontext"
)

// actorFromContext names the admin behind a roster mutation. Mutations only
// reach this service through admin-gated routes, so a missing identity means
// internal wiring such as the demo seeder.
func actorFromContext(ctx context.Context) string {
	if admin, ok := requestcontext.Admin(ctx); ok {
		return admin.Username
	}
	return "system"
}

func (s *Service) logAudit(ctx context.Context, event, subject string, attributes ...any) {
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
		Actor:     actorFromContext(ctx),
		Subject:   subject,
		Action:    event,
		RequestID: requestID,
		ClientIP:  requestcontext.ClientIP(ctx),
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event", "error", err)
	}
}

func (s *Service) incrementStudentsAdded() {
	if s.metrics != nil {
		s.metrics.IncrementStudentsAdded()
	}
}
