package service

import (
	"context"

	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// ExportCSV returns the roster as a CSV document for admin download.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	data, err := s.roster.ExportCSV(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to export student roster")
	}
	return data, nil
}
