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

func (s *ServiceSuite) TestValidateSessionTokenSuccess() {
	session := s.newTestSession("sess-1")
	lastSeen := session.LastSeenAt
	s.mockTokens.EXPECT().
		Validate("valid-token").
		Return(&token.SessionClaims{SessionID: "sess-1"}, nil)
	s.mockSessionStore.EXPECT().FindByID(gomock.Any(), "sess-1").Return(session, nil)
	s.mockSessionStore.EXPECT().Update(gomock.Any(), session).Return(nil)

	got, err := s.service.ValidateSessionToken(context.Background(), "valid-token")

	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("sess-1", got.ID)
	s.True(got.LastSeenAt.After(lastSeen))
}

func (s *ServiceSuite) TestValidateSessionTokenMissing() {
	_, err := s.service.ValidateSessionToken(context.Background(), "")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestValidateSessionTokenInvalid() {
	s.mockTokens.EXPECT().
		Validate("garbage").
		Return(nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))

	_, err := s.service.ValidateSessionToken(context.Background(), "garbage")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestValidateSessionTokenSessionNotFound() {
	s.mockTokens.EXPECT().
		Validate("valid-token").
		Return(&token.SessionClaims{SessionID: "sess-gone"}, nil)
	s.mockSessionStore.EXPECT().
		FindByID(gomock.Any(), "sess-gone").
		Return(nil, fmt.Errorf("find session: %w", sentinel.ErrNotFound))

	_, err := s.service.ValidateSessionToken(context.Background(), "valid-token")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestValidateSessionTokenStoreFailure() {
	s.mockTokens.EXPECT().
		Validate("valid-token").
		Return(&token.SessionClaims{SessionID: "sess-1"}, nil)
	s.mockSessionStore.EXPECT().
		FindByID(gomock.Any(), "sess-1").
		Return(nil, errors.New("store unavailable"))

	_, err := s.service.ValidateSessionToken(context.Background(), "valid-token")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestValidateSessionTokenRevoked() {
	session := s.newTestSession("sess-1")
	revokedAt := time.Now().Add(-time.Minute)
	session.Status = models.SessionStatusRevoked
	session.RevokedAt = &revokedAt

	s.mockTokens.EXPECT().
		Validate("valid-token").
		Return(&token.SessionClaims{SessionID: "sess-1"}, nil)
	s.mockSessionStore.EXPECT().FindByID(gomock.Any(), "sess-1").Return(session, nil)

	_, err := s.service.ValidateSessionToken(context.Background(), "valid-token")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestValidateSessionTokenExpired() {
	session := s.newTestSession("sess-1")
	session.ExpiresAt = time.Now().Add(-time.Minute)

	s.mockTokens.EXPECT().
		Validate("valid-token").
		Return(&token.SessionClaims{SessionID: "sess-1"}, nil)
	s.mockSessionStore.EXPECT().FindByID(gomock.Any(), "sess-1").Return(session, nil)

	_, err := s.service.ValidateSessionToken(context.Background(), "valid-token")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestValidateSessionTokenActivityWriteFailureTolerated() {
	session := s.newTestSession("sess-1")
	s.mockTokens.EXPECT().
		Validate("valid-token").
		Return(&token.SessionClaims{SessionID: "sess-1"}, nil)
	s.mockSessionStore.EXPECT().FindByID(gomock.Any(), "sess-1").Return(session, nil)
	s.mockSessionStore.EXPECT().Update(gomock.Any(), session).Return(errors.New("write failed"))

	got, err := s.service.ValidateSessionToken(context.Background(), "valid-token")

	s.Require().NoError(err)
	s.NotNil(got)
}
