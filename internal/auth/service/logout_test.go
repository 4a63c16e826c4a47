package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/lucky-arya/CSIxMKITOS/internal/auth/models"
	"github.com/lucky-arya/CSIxMKITOS/internal/auth/token"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
)

func (s *ServiceSuite) TestLogoutRevokesSession() {
	session := s.newTestSession("sess-1")
	s.mockTokens.EXPECT().
		Validate("valid-token").
		Return(&token.SessionClaims{SessionID: "sess-1"}, nil)
	s.mockSessionStore.EXPECT().FindByID(gomock.Any(), "sess-1").Return(session, nil)
	s.mockSessionStore.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *models.AdminSession) error {
			s.Equal(models.SessionStatusRevoked, updated.Status)
			s.NotNil(updated.RevokedAt)
			return nil
		})

	err := s.service.Logout(context.Background(), "valid-token")
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestLogoutEmptyTokenIsNoop() {
	err := s.service.Logout(context.Background(), "")
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestLogoutInvalidTokenIsNoop() {
	s.mockTokens.EXPECT().
		Validate("garbage").
		Return(nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))

	err := s.service.Logout(context.Background(), "garbage")
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestLogoutMissingSessionIsNoop() {
	s.mockTokens.EXPECT().
		Validate("valid-token").
		Return(&token.SessionClaims{SessionID: "sess-gone"}, nil)
	s.mockSessionStore.EXPECT().
		FindByID(gomock.Any(), "sess-gone").
		Return(nil, fmt.Errorf("find session: %w", sentinel.ErrNotFound))

	err := s.service.Logout(context.Background(), "valid-token")
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestLogoutAlreadyRevokedIsNoop() {
	session := s.newTestSession("sess-1")
	revokedAt := time.Now().Add(-time.Minute)
	session.Status = models.SessionStatusRevoked
	session.RevokedAt = &revokedAt

	s.mockTokens.EXPECT().
		Validate("valid-token").
		Return(&token.SessionClaims{SessionID: "sess-1"}, nil)
	s.mockSessionStore.EXPECT().FindByID(gomock.Any(), "sess-1").Return(session, nil)

	err := s.service.Logout(context.Background(), "valid-token")
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestLogoutUpdateFailure() {
	session := s.newTestSession("sess-1")
	s.mockTokens.EXPECT().
		Validate("valid-token").
		Return(&token.SessionClaims{SessionID: "sess-1"}, nil)
	s.mockSessionStore.EXPECT().FindByID(gomock.Any(), "sess-1").Return(session, nil)
	s.mockSessionStore.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("write failed"))

	err := s.service.Logout(context.Background(), "valid-token")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
