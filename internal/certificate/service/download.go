package service

import (
	"context"
	"errors"
	"time"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	"github.com/lucky-arya/CSIxMKITOS/internal/certificate/models"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// MarkDownloaded records one download of the referenced certificate: it sets
// the downloaded flag, increments the count by exactly one and stamps the
// download time. The store applies the update under its write lock, so
// concurrent downloads each count.
func (s *Service) MarkDownloaded(ctx context.Context, id string) (*models.Reference, error) {
	ref, err := s.references.MarkDownloaded(ctx, id, time.Now())
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "certificate reference not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record certificate download")
	}

	s.logAudit(ctx, string(audit.EventCertificateDownloaded), ref.User.Email,
		"granted", "",
		"reference_id", ref.ID,
		"download_count", ref.DownloadCount,
	)
	s.incrementDownloads()
	return ref, nil
}
