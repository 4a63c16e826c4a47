package service

import (
	"context"

	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// Clear resets the roster to its empty bootstrap state. The caller owns the
// audit trail for resets, which always span more than the roster.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.roster.ReplaceAll(ctx, nil); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to reset student roster")
	}
	return nil
}
