package service

import (
	"context"

	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// ExportJSON returns the reference store exactly as persisted, for the admin
// raw-file download.
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := s.references.ExportJSON(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to export certificate references")
	}
	return data, nil
}
