package service

import (
	"log/slog"

	"github.com/lucky-arya/CSIxMKITOS/internal/platform/metrics"
)

// Service implements roster management on top of a RosterStore.
type Service struct {
	roster         RosterStore
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

func NewService(roster RosterStore, opts ...Option) *Service {
	svc := &Service{roster: roster}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}
