// Package admin provides the dashboard aggregate and whole-system maintenance
// operations behind the admin session gate.
package admin

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	certservice "github.com/lucky-arya/CSIxMKITOS/internal/certificate/service"
	rostermodels "github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
	"github.com/lucky-arya/CSIxMKITOS/pkg/requestcontext"
)

// recentEventLimit caps the dashboard's activity panel.
const recentEventLimit = 20

// Service assembles admin views over the roster, reference and audit stores.
type Service struct {
	roster         RosterService
	certificates   CertificateService
	auditReader    AuditReader
	auditPublisher AuditPublisher
	logger         *slog.Logger
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

func NewService(roster RosterService, certificates CertificateService, auditReader AuditReader, opts ...Option) *Service {
	svc := &Service{roster: roster, certificates: certificates, auditReader: auditReader}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}

// Dashboard is the admin landing view: roster size, reference activity and
// the most recent audit events.
type Dashboard struct {
	TotalStudents   int           `json:"total_students"`
	TotalReferences int           `json:"total_references"`
	TotalDownloads  int           `json:"total_downloads"`
	UniqueDownloads int           `json:"unique_downloads"`
	RecentEvents    []audit.Event `json:"recent_events"`
	GeneratedAt     time.Time     `json:"generated_at"`
}

// GetDashboard gathers the three dashboard sources in parallel with shared
// cancellation. Each fetch writes to its own variable, so assembly after the
// wait is race-free.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	g, ctx := errgroup.WithContext(ctx)

	var (
		students []rostermodels.Student
		stats    *certservice.Stats
		events   []audit.Event
	)

	g.Go(func() error {
		var err error
		students, err = s.roster.List(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.certificates.GetStats(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.auditReader.ListRecent(ctx, recentEventLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to assemble dashboard")
	}

	if events == nil {
		events = []audit.Event{}
	}
	return &Dashboard{
		TotalStudents:   len(students),
		TotalReferences: stats.TotalReferences,
		TotalDownloads:  stats.TotalDownloads,
		UniqueDownloads: stats.UniqueDownloads,
		RecentEvents:    events,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// ResetSystem wipes the reference store and resets the roster to its
// bootstrap state. References go first; a roster wipe that fails afterwards
// leaves no reference pointing at a missing student.
func (s *Service) ResetSystem(ctx context.Context) error {
	if err := s.certificates.Clear(ctx); err != nil {
		return err
	}
	if err := s.roster.Clear(ctx); err != nil {
		return err
	}

	s.logAudit(ctx, string(audit.EventSystemReset))
	return nil
}

func (s *Service) logAudit(ctx context.Context, event string) {
	requestID := requestcontext.RequestID(ctx)
	args := []any{"event", event, "log_type", "audit"}
	if requestID != "" {
		args = append(args, "request_id", requestID)
	}
	s.logger.InfoContext(ctx, event, args...)

	if s.auditPublisher == nil {
		return
	}
	actor := "system"
	if adminIdentity, ok := requestcontext.Admin(ctx); ok {
		actor = adminIdentity.Username
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		Actor:     actor,
		Action:    event,
		RequestID: requestID,
		ClientIP:  requestcontext.ClientIP(ctx),
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event", "error", err)
	}
}
