package admin

import (
	"context"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	certservice "github.com/lucky-arya/CSIxMKITOS/internal/certificate/service"
	rostermodels "github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
)

// RosterService exposes the roster operations the dashboard and system reset
// need.
type RosterService interface {
	List(ctx context.Context) ([]rostermodels.Student, error)
	Clear(ctx context.Context) error
}

// CertificateService exposes the reference operations the dashboard and
// system reset need.
type CertificateService interface {
	GetStats(ctx context.Context) (*certservice.Stats, error)
	Clear(ctx context.Context) error
}

// AuditReader feeds the dashboard's recent-activity panel.
type AuditReader interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// AuditPublisher records admin maintenance actions in the audit trail.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
