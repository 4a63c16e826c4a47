package service

import (
	"context"
	"sort"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	"github.com/lucky-arya/CSIxMKITOS/internal/certificate/models"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

// ReconcileResult reports the outcome of a duplicate cleanup pass.
type ReconcileResult struct {
	Removed    int
	Remaining  int
	RemovedIDs []string
}

// ReconcileDuplicates collapses the reference store down to one reference per
// normalized student. Within a duplicate group the survivor is the reference
// with the later timestamp; equal timestamps fall to the higher download
// count. The surviving set replaces the whole store in one atomic rewrite, so
// a failed cleanup leaves the prior state intact.
func (s *Service) ReconcileDuplicates(ctx context.Context) (*ReconcileResult, error) {
	refs, err := s.references.All(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificate references")
	}

	survivors := make(map[string]models.Reference, len(refs))
	var removedIDs []string
	for _, ref := range refs {
		key := ref.User.Key()
		current, seen := survivors[key]
		if !seen {
			survivors[key] = ref
			continue
		}
		if wins(ref, current) {
			removedIDs = append(removedIDs, current.ID)
			survivors[key] = ref
		} else {
			removedIDs = append(removedIDs, ref.ID)
		}
	}

	result := &ReconcileResult{
		Removed:    len(removedIDs),
		Remaining:  len(survivors),
		RemovedIDs: removedIDs,
	}
	if len(removedIDs) == 0 {
		return result, nil
	}
	sort.Strings(result.RemovedIDs)

	kept := make([]models.Reference, 0, len(survivors))
	for _, ref := range survivors {
		kept = append(kept, ref)
	}
	if err := s.references.ReplaceAll(ctx, kept); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to rewrite certificate references")
	}

	s.logAudit(ctx, string(audit.EventDuplicatesReconciled), "",
		"granted", "",
		"removed", result.Removed,
		"remaining", result.Remaining,
	)
	s.addDuplicatesRemoved(result.Removed)
	return result, nil
}

// wins reports whether a should survive over b within one duplicate group.
func wins(a, b models.Reference) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.DownloadCount > b.DownloadCount
}
