package service

import (
	"context"

	"github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// List returns every student on the roster in file order.
func (s *Service) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.roster.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load student roster")
	}
	return students, nil
}
