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
	"github.com/lucky-arya/CSIxMKITOS/internal/certificate/models"
	"github.com/lucky-arya/CSIxMKITOS/internal/certificate/service/mocks"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

func (s *ServiceSuite) TestVerifyAndIssueMintsNewReference() {
	student := s.eligibleStudent()
	s.mockStudents.EXPECT().
		FindByKey(gomock.Any(), "jane doe", "JANE@X.COM").
		Return(&student, nil)
	s.mockRefs.EXPECT().
		FindByStudent(gomock.Any(), student.Name, student.Email).
		Return(nil, fmt.Errorf("no reference for student: %w", sentinel.ErrNotFound))

	var saved models.Reference
	s.mockRefs.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ref models.Reference) error {
			saved = ref
			return nil
		})

	result, err := s.service.VerifyAndIssue(context.Background(), "jane doe", "JANE@X.COM")
	s.Require().NoError(err)
	s.False(result.Existing)
	s.Regexp(models.ReferenceIDPattern, result.Reference.ID)
	s.Equal(student, result.Reference.User)
	s.Equal(saved.ID, result.Reference.ID)
	s.False(result.Reference.Downloaded)
	s.Zero(result.Reference.DownloadCount)
}

func (s *ServiceSuite) TestVerifyAndIssueReusesExistingReference() {
	student := s.eligibleStudent()
	existing := s.issuedReference("CERT-ABC123-0F1D2", time.Now().UTC())

	s.mockStudents.EXPECT().
		FindByKey(gomock.Any(), student.Name, student.Email).
		Return(&student, nil)
	s.mockRefs.EXPECT().
		FindByStudent(gomock.Any(), student.Name, student.Email).
		Return(&existing, nil)

	result, err := s.service.VerifyAndIssue(context.Background(), student.Name, student.Email)
	s.Require().NoError(err)
	s.True(result.Existing)
	s.Equal(existing.ID, result.Reference.ID)
}

func (s *ServiceSuite) TestVerifyAndIssueUnknownStudentIsNotFound() {
	s.mockStudents.EXPECT().
		FindByKey(gomock.Any(), "Nobody", "nobody@example.com").
		Return(nil, fmt.Errorf("student not found: %w", sentinel.ErrNotFound))

	_, err := s.service.VerifyAndIssue(context.Background(), "Nobody", "nobody@example.com")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestVerifyAndIssueIneligibleCarriesStatus() {
	student := s.eligibleStudent()
	student.Eligibility = "pending review"
	s.mockStudents.EXPECT().
		FindByKey(gomock.Any(), student.Name, student.Email).
		Return(&student, nil)

	_, err := s.service.VerifyAndIssue(context.Background(), student.Name, student.Email)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	var ineligible *models.IneligibleError
	s.Require().ErrorAs(err, &ineligible)
	s.Equal("pending review", ineligible.Status)
}

func (s *ServiceSuite) TestVerifyAndIssueIneligibleEmitsDenialAudit() {
	publisher := mocks.NewMockAuditPublisher(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(s.mockRefs, s.mockStudents, WithLogger(logger), WithAuditPublisher(publisher))

	student := s.eligibleStudent()
	student.Eligibility = "not eligible"
	s.mockStudents.EXPECT().
		FindByKey(gomock.Any(), student.Name, student.Email).
		Return(&student, nil)
	publisher.EXPECT().
		Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event audit.Event) error {
			s.Equal(string(audit.EventEligibilityDenied), event.Action)
			s.Equal(student.Email, event.Subject)
			s.Equal("denied", event.Decision)
			s.Equal("not eligible", event.Reason)
			return nil
		})

	_, err := s.service.VerifyAndIssue(context.Background(), student.Name, student.Email)
	s.Require().Error(err)
}

func (s *ServiceSuite) TestVerifyAndIssueRosterFailure() {
	s.mockStudents.EXPECT().
		FindByKey(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("disk error"))

	_, err := s.service.VerifyAndIssue(context.Background(), "Asha Rao", "asha@example.com")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestVerifyAndIssueSaveFailure() {
	student := s.eligibleStudent()
	s.mockStudents.EXPECT().
		FindByKey(gomock.Any(), student.Name, student.Email).
		Return(&student, nil)
	s.mockRefs.EXPECT().
		FindByStudent(gomock.Any(), student.Name, student.Email).
		Return(nil, fmt.Errorf("no reference for student: %w", sentinel.ErrNotFound))
	s.mockRefs.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(errors.New("disk full"))

	_, err := s.service.VerifyAndIssue(context.Background(), student.Name, student.Email)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
