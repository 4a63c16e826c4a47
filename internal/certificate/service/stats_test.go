package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/lucky-arya/CSIxMKITOS/internal/certificate/models"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

func (s *ServiceSuite) TestGetStatsAggregatesDownloads() {
	now := time.Now().UTC()
	never := s.issuedReference("CERT-AAA-00000", now)
	once := s.issuedReference("CERT-BBB-00000", now)
	once.Downloaded = true
	once.DownloadCount = 1
	many := s.issuedReference("CERT-CCC-00000", now)
	many.Downloaded = true
	many.DownloadCount = 4

	s.mockRefs.EXPECT().
		All(gomock.Any()).
		Return([]models.Reference{never, once, many}, nil)

	stats, err := s.service.GetStats(context.Background())
	s.Require().NoError(err)
	s.Equal(3, stats.TotalReferences)
	s.Equal(5, stats.TotalDownloads)
	s.Equal(2, stats.UniqueDownloads)
}

func (s *ServiceSuite) TestGetStatsEmptyStore() {
	s.mockRefs.EXPECT().All(gomock.Any()).Return(nil, nil)

	stats, err := s.service.GetStats(context.Background())
	s.Require().NoError(err)
	s.Zero(stats.TotalReferences)
	s.Zero(stats.TotalDownloads)
	s.Zero(stats.UniqueDownloads)
}

func (s *ServiceSuite) TestGetStatsStoreFailure() {
	s.mockRefs.EXPECT().All(gomock.Any()).Return(nil, errors.New("disk error"))

	_, err := s.service.GetStats(context.Background())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
