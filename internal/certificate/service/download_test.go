package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	"github.com/lucky-arya/CSIxMKITOS/internal/certificate/service/mocks"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
	"github.com/lucky-arya/CSIxMKITOS/pkg/requestcontext"
)

func (s *ServiceSuite) TestMarkDownloadedReturnsUpdatedReference() {
	updated := s.issuedReference("CERT-ABC123-0F1D2", time.Now().UTC())
	updated.Downloaded = true
	updated.DownloadCount = 3

	s.mockRefs.EXPECT().
		MarkDownloaded(gomock.Any(), "CERT-ABC123-0F1D2", gomock.Any()).
		Return(&updated, nil)

	ref, err := s.service.MarkDownloaded(context.Background(), "CERT-ABC123-0F1D2")
	s.Require().NoError(err)
	s.True(ref.Downloaded)
	s.Equal(3, ref.DownloadCount)
}

func (s *ServiceSuite) TestMarkDownloadedUnknownIDIsNotFound() {
	s.mockRefs.EXPECT().
		MarkDownloaded(gomock.Any(), "CERT-MISSING-AAAAA", gomock.Any()).
		Return(nil, fmt.Errorf("reference CERT-MISSING-AAAAA: %w", sentinel.ErrNotFound))

	_, err := s.service.MarkDownloaded(context.Background(), "CERT-MISSING-AAAAA")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestMarkDownloadedStoreFailure() {
	s.mockRefs.EXPECT().
		MarkDownloaded(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("disk full"))

	_, err := s.service.MarkDownloaded(context.Background(), "CERT-ABC123-0F1D2")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestMarkDownloadedEmitsAuditWithDevice() {
	publisher := mocks.NewMockAuditPublisher(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(s.mockRefs, s.mockStudents, WithLogger(logger), WithAuditPublisher(publisher))

	updated := s.issuedReference("CERT-ABC123-0F1D2", time.Now().UTC())
	updated.Downloaded = true
	updated.DownloadCount = 1
	s.mockRefs.EXPECT().
		MarkDownloaded(gomock.Any(), updated.ID, gomock.Any()).
		Return(&updated, nil)
	publisher.EXPECT().
		Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event audit.Event) error {
			s.Equal(string(audit.EventCertificateDownloaded), event.Action)
			s.Equal(updated.User.Email, event.Subject)
			s.Equal("Chrome on Windows", event.Device)
			return nil
		})

	ctx := requestcontext.WithDevice(context.Background(), "Chrome on Windows")
	_, err := s.service.MarkDownloaded(ctx, updated.ID)
	s.Require().NoError(err)
}
