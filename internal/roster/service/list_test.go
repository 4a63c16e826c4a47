package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/mock/gomock"

	"github.com/lucky-arya/CSIxMKITOS/internal/roster/models"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

func (s *ServiceSuite) TestListReturnsRoster() {
	roster := []models.Student{
		{Name: "Asha Rao", Email: "asha@example.com", Eligibility: "eligible"},
		{Name: "Ben Ito", Email: "ben@example.com", Eligibility: "pending"},
	}
	s.mockRoster.EXPECT().List(gomock.Any()).Return(roster, nil)

	students, err := s.service.List(context.Background())
	s.Require().NoError(err)
	s.Equal(roster, students)
}

func (s *ServiceSuite) TestListEmptyRoster() {
	s.mockRoster.EXPECT().List(gomock.Any()).Return(nil, nil)

	students, err := s.service.List(context.Background())
	s.Require().NoError(err)
	s.Empty(students)
}

func (s *ServiceSuite) TestListMalformedFileIsStorageError() {
	s.mockRoster.EXPECT().
		List(gomock.Any()).
		Return(nil, fmt.Errorf("parse roster file: %w", sentinel.ErrMalformed))

	_, err := s.service.List(context.Background())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestListStoreFailure() {
	s.mockRoster.EXPECT().List(gomock.Any()).Return(nil, errors.New("read failed"))

	_, err := s.service.List(context.Background())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
