// Package service implements the certificate reference lifecycle: eligibility
// checks, idempotent issuance, download tracking and duplicate repair.
package service

import (
	"log/slog"

	"github.com/lucky-arya/CSIxMKITOS/internal/platform/metrics"
)

// Service coordinates the roster directory and the reference store.
type Service struct {
	references     ReferenceStore
	students       StudentDirectory
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(references ReferenceStore, students StudentDirectory, opts ...Option) *Service {
	svc := &Service{references: references, students: students}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}
