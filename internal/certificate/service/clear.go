package service

import (
	"context"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// Clear wipes every stored reference. Issued certificates stop resolving
// immediately; there is no undo beyond re-verifying each student.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.references.ReplaceAll(ctx, nil); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear certificate references")
	}

	s.logAudit(ctx, string(audit.EventReferencesCleared), "", "granted", "")
	return nil
}
