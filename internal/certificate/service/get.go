package service

import (
	"context"
	"errors"

	"github.com/lucky-arya/CSIxMKITOS/internal/certificate/models"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// Get returns the stored reference for an ID. Malformed IDs fall out as
// not-found rather than validation errors; the store is the only authority on
// what IDs exist.
func (s *Service) Get(ctx context.Context, id string) (*models.Reference, error) {
	ref, err := s.references.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "certificate reference not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificate references")
	}
	return ref, nil
}
