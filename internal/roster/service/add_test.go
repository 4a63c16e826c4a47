package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.uber.org/mock/gomock"

	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	"github.com/lucky-arya/CSIxMKITOS/internal/roster/service/mocks"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

func (s *ServiceSuite) TestAddAppendsStudent() {
	student := s.eligibleStudent()
	s.mockRoster.EXPECT().Append(gomock.Any(), student).Return(nil)

	err := s.service.Add(context.Background(), student)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestAddDuplicateIsConflict() {
	student := s.eligibleStudent()
	s.mockRoster.EXPECT().
		Append(gomock.Any(), student).
		Return(fmt.Errorf("student already on roster: %w", sentinel.ErrAlreadyExists))

	err := s.service.Add(context.Background(), student)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestAddStoreFailure() {
	student := s.eligibleStudent()
	s.mockRoster.EXPECT().Append(gomock.Any(), student).Return(errors.New("disk full"))

	err := s.service.Add(context.Background(), student)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestAddEmitsAuditEvent() {
	publisher := mocks.NewMockAuditPublisher(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(s.mockRoster, WithLogger(logger), WithAuditPublisher(publisher))

	student := s.eligibleStudent()
	s.mockRoster.EXPECT().Append(gomock.Any(), student).Return(nil)
	publisher.EXPECT().
		Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event audit.Event) error {
			s.Equal(string(audit.EventStudentAdded), event.Action)
			s.Equal(student.Email, event.Subject)
			return nil
		})

	err := s.service.Add(context.Background(), student)
	s.Require().NoError(err)
}
