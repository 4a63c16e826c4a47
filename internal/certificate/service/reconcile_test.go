package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/lucky-arya/CSIxMKITOS/internal/certificate/models"
	rostermodels "github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

func (s *ServiceSuite) TestReconcileKeepsLaterTimestamp() {
	earlier := s.issuedReference("CERT-OLD-00000", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	later := s.issuedReference("CERT-NEW-00000", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	s.mockRefs.EXPECT().All(gomock.Any()).Return([]models.Reference{earlier, later}, nil)
	s.mockRefs.EXPECT().
		ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, kept []models.Reference) error {
			s.Require().Len(kept, 1)
			s.Equal("CERT-NEW-00000", kept[0].ID)
			return nil
		})

	result, err := s.service.ReconcileDuplicates(context.Background())
	s.Require().NoError(err)
	s.Equal(1, result.Removed)
	s.Equal(1, result.Remaining)
	s.Equal([]string{"CERT-OLD-00000"}, result.RemovedIDs)
}

func (s *ServiceSuite) TestReconcileTieBreaksOnDownloadCount() {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	light := s.issuedReference("CERT-LIGHT-00000", ts)
	light.DownloadCount = 1
	heavy := s.issuedReference("CERT-HEAVY-00000", ts)
	heavy.Downloaded = true
	heavy.DownloadCount = 5

	s.mockRefs.EXPECT().All(gomock.Any()).Return([]models.Reference{light, heavy}, nil)
	s.mockRefs.EXPECT().
		ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, kept []models.Reference) error {
			s.Require().Len(kept, 1)
			s.Equal("CERT-HEAVY-00000", kept[0].ID)
			return nil
		})

	result, err := s.service.ReconcileDuplicates(context.Background())
	s.Require().NoError(err)
	s.Equal([]string{"CERT-LIGHT-00000"}, result.RemovedIDs)
}

func (s *ServiceSuite) TestReconcileLeavesDistinctStudentsAlone() {
	now := time.Now().UTC()
	asha := s.issuedReference("CERT-AAA-00000", now)
	ben := models.Reference{
		ID:        "CERT-BBB-00000",
		User:      rostermodels.Student{Name: "Ben Ito", Email: "ben@example.com", Eligibility: "well done"},
		Timestamp: now,
	}

	s.mockRefs.EXPECT().All(gomock.Any()).Return([]models.Reference{asha, ben}, nil)

	result, err := s.service.ReconcileDuplicates(context.Background())
	s.Require().NoError(err)
	s.Zero(result.Removed)
	s.Equal(2, result.Remaining)
	s.Empty(result.RemovedIDs)
}

func (s *ServiceSuite) TestReconcileGroupsByNormalizedStudent() {
	older := models.Reference{
		ID:        "CERT-OLD-00000",
		User:      rostermodels.Student{Name: "Asha Rao", Email: "asha@example.com", Eligibility: "eligible"},
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := models.Reference{
		ID:        "CERT-NEW-00000",
		User:      rostermodels.Student{Name: "  ASHA RAO ", Email: "Asha@Example.COM", Eligibility: "eligible"},
		Timestamp: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	s.mockRefs.EXPECT().All(gomock.Any()).Return([]models.Reference{older, newer}, nil)
	s.mockRefs.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).Return(nil)

	result, err := s.service.ReconcileDuplicates(context.Background())
	s.Require().NoError(err)
	s.Equal([]string{"CERT-OLD-00000"}, result.RemovedIDs)
}

func (s *ServiceSuite) TestReconcileRewriteFailureSurfaces() {
	refs := []models.Reference{
		s.issuedReference("CERT-AAA-00000", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		s.issuedReference("CERT-BBB-00000", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)),
	}
	s.mockRefs.EXPECT().All(gomock.Any()).Return(refs, nil)
	s.mockRefs.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := s.service.ReconcileDuplicates(context.Background())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
