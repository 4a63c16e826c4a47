package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/lucky-arya/CSIxMKITOS/internal/auth/models"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
	"github.com/lucky-arya/CSIxMKITOS/pkg/secrets"
)

func (s *ServiceSuite) TestLoginSuccess() {
	var created *models.AdminSession
	s.mockSessionStore.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, session *models.AdminSession) error {
			created = session
			return nil
		})
	s.mockTokens.EXPECT().
		Generate(gomock.Any(), "admin", gomock.Any()).
		Return("signed-token", nil)
	s.mockSessionStore.EXPECT().
		DeleteExpired(gomock.Any(), gomock.Any()).
		Return(0, nil)

	session, signed, err := s.service.Login(context.Background(), "admin", "hunter2")

	s.Require().NoError(err)
	s.Require().NotNil(session)
	s.Equal("signed-token", signed)
	s.Equal("admin", session.Username)
	s.Equal(models.SessionStatusActive, session.Status)
	s.Require().NotNil(created)
	s.Equal(created.ID, session.ID)
	s.WithinDuration(session.CreatedAt.Add(2*time.Hour), session.ExpiresAt, time.Second)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	session, signed, err := s.service.Login(context.Background(), "admin", "wrong")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	s.Nil(session)
	s.Empty(signed)
}

func (s *ServiceSuite) TestLoginWrongUsername() {
	session, _, err := s.service.Login(context.Background(), "root", "hunter2")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	s.Nil(session)
}

func (s *ServiceSuite) TestLoginHashedPasswordTakesPrecedence() {
	// The plaintext field is deliberately different from the hashed password.
	hashed, err := secrets.Hash("correct horse")
	s.Require().NoError(err)
	svc := NewService(
		s.mockSessionStore,
		s.mockTokens,
		Credentials{Username: "admin", Password: "hunter2", PasswordHash: hashed},
		WithLogger(s.service.logger),
	)

	_, _, err = svc.Login(context.Background(), "admin", "hunter2")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	s.mockSessionStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.mockTokens.EXPECT().Generate(gomock.Any(), "admin", gomock.Any()).Return("signed-token", nil)
	s.mockSessionStore.EXPECT().DeleteExpired(gomock.Any(), gomock.Any()).Return(0, nil)

	_, signed, err := svc.Login(context.Background(), "admin", "correct horse")
	s.Require().NoError(err)
	s.Equal("signed-token", signed)
}

func (s *ServiceSuite) TestLoginStoreFailure() {
	s.mockSessionStore.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(errors.New("disk full"))

	_, _, err := s.service.Login(context.Background(), "admin", "hunter2")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestLoginTokenSigningFailure() {
	s.mockSessionStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.mockTokens.EXPECT().
		Generate(gomock.Any(), "admin", gomock.Any()).
		Return("", errors.New("bad key"))

	_, _, err := s.service.Login(context.Background(), "admin", "hunter2")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestLoginSweepFailureDoesNotFailLogin() {
	s.mockSessionStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.mockTokens.EXPECT().Generate(gomock.Any(), "admin", gomock.Any()).Return("signed-token", nil)
	s.mockSessionStore.EXPECT().
		DeleteExpired(gomock.Any(), gomock.Any()).
		Return(0, errors.New("store unavailable"))

	session, signed, err := s.service.Login(context.Background(), "admin", "hunter2")

	s.Require().NoError(err)
	s.NotNil(session)
	s.Equal("signed-token", signed)
}
