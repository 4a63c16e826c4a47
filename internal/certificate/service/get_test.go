package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

func (s *ServiceSuite) TestGetReturnsStoredReference() {
	ref := s.issuedReference("CERT-ABC123-0F1D2", time.Now().UTC())
	s.mockRefs.EXPECT().FindByID(gomock.Any(), ref.ID).Return(&ref, nil)

	got, err := s.service.Get(context.Background(), ref.ID)
	s.Require().NoError(err)
	s.Equal(ref, *got)
}

func (s *ServiceSuite) TestGetUnknownIDIsNotFound() {
	s.mockRefs.EXPECT().
		FindByID(gomock.Any(), "garbage").
		Return(nil, fmt.Errorf("reference garbage: %w", sentinel.ErrNotFound))

	_, err := s.service.Get(context.Background(), "garbage")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestGetStoreFailure() {
	s.mockRefs.EXPECT().
		FindByID(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("disk error"))

	_, err := s.service.Get(context.Background(), "CERT-ABC123-0F1D2")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
