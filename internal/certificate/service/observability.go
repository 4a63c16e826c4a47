package service

import (
	"context"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	"github.com/lucky-arya/CSIxMKITOS/pkg/requestcontext"
)

// logAudit mirrors the structured log line into the audit trail. Certificate
// operations are student-facing, so the actor is the subject student rather
// than an admin unless an admin identity is on the context.
func (s *Service) logAudit(ctx context.Context, event, subject, decision, reason string, attributes ...any) {
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
	actor := subject
	if admin, ok := requestcontext.Admin(ctx); ok {
		actor = admin.Username
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		Actor:     actor,
		Subject:   subject,
		Action:    event,
		Decision:  decision,
		Reason:    reason,
		RequestID: requestID,
		ClientIP:  requestcontext.ClientIP(ctx),
		Device:    requestcontext.Device(ctx),
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event", "error", err)
	}
}

func (s *Service) incrementIssued() {
	if s.metrics != nil {
		s.metrics.IncrementCertificatesIssued()
	}
}

func (s *Service) incrementReused() {
	if s.metrics != nil {
		s.metrics.IncrementCertificatesReused()
	}
}

func (s *Service) incrementDownloads() {
	if s.metrics != nil {
		s.metrics.IncrementCertificateDownloads()
	}
}

func (s *Service) addDuplicatesRemoved(n int) {
	if s.metrics != nil {
		s.metrics.AddDuplicatesRemoved(n)
	}
}
