package service

import (
	"context"

	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// Stats aggregates download activity over the whole reference store.
type Stats struct {
	TotalReferences int `json:"total_references"`
	TotalDownloads  int `json:"total_downloads"`
	UniqueDownloads int `json:"unique_downloads"`
}

// GetStats computes issuance and download totals. UniqueDownloads counts
// references downloaded at least once; TotalDownloads sums every recorded
// download across references.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	refs, err := s.references.All(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificate references")
	}

	stats := &Stats{TotalReferences: len(refs)}
	for _, ref := range refs {
		stats.TotalDownloads += ref.DownloadCount
		if ref.Downloaded {
			stats.UniqueDownloads++
		}
	}
	return stats, nil
}
