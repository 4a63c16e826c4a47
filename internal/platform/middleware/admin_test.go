package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/lucky-arya/CSIxMKITOS/internal/auth/models"
	dErrors "github.com/lucky-arya/CSIxMKITOS/pkg/domain-errors"
	"github.com/lucky-arya/CSIxMKITOS/pkg/requestcontext"
)

// MockSessionValidator is a testify mock for SessionValidator
type MockSessionValidator struct {
	mock.Mock
}

func (m *MockSessionValidator) ValidateSessionToken(ctx context.Context, tokenString string) (*models.AdminSession, error) {
	args := m.Called(ctx, tokenString)
	if session := args.Get(0); session != nil {
		return session.(*models.AdminSession), args.Error(1)
	}
	return nil, args.Error(1)
}

// mockHandler is a test handler that captures if it was called and the context
type mockHandler struct {
	called  bool
	context context.Context
}

func (m *mockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.called = true
	m.context = r.Context()
	w.WriteHeader(http.StatusOK)
}

type AdminMiddlewareTestSuite struct {
	suite.Suite
	validator   *MockSessionValidator
	nextHandler *mockHandler
	middleware  func(http.Handler) http.Handler
}

func (s *AdminMiddlewareTestSuite) SetupTest() {
	s.validator = new(MockSessionValidator)
	s.nextHandler = &mockHandler{}
	s.middleware = RequireAdmin(s.validator, slog.Default())
}

func (s *AdminMiddlewareTestSuite) TearDownTest() {
	s.validator.AssertExpectations(s.T())
}

func (s *AdminMiddlewareTestSuite) makeRequest(cookieValue string) *httptest.ResponseRecorder {
	handler := s.middleware(s.nextHandler)
	req := httptest.NewRequest(http.MethodGet, "/admin/students.csv", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: models.SessionCookieName, Value: cookieValue})
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func (s *AdminMiddlewareTestSuite) TestValidSession() {
	session := &models.AdminSession{
		ID:        "sess-1",
		Username:  "admin",
		Status:    models.SessionStatusActive,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.validator.On("ValidateSessionToken", mock.Anything, "valid-token").Return(session, nil)

	w := s.makeRequest("valid-token")

	require.True(s.T(), s.nextHandler.called, "next handler should be called")
	assert.Equal(s.T(), http.StatusOK, w.Code)

	admin, ok := requestcontext.Admin(s.nextHandler.context)
	require.True(s.T(), ok, "admin identity should be in context")
	assert.Equal(s.T(), "sess-1", admin.SessionID)
	assert.Equal(s.T(), "admin", admin.Username)
}

func (s *AdminMiddlewareTestSuite) TestMissingCookie() {
	w := s.makeRequest("")

	assert.False(s.T(), s.nextHandler.called, "next handler should not be called")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.JSONEq(s.T(),
		`{"error":"unauthorized","error_description":"Admin session required"}`,
		w.Body.String())
}

func (s *AdminMiddlewareTestSuite) TestRejectedSession() {
	s.validator.On("ValidateSessionToken", mock.Anything, "stale-token").
		Return(nil, dErrors.New(dErrors.CodeUnauthorized, "session has expired"))

	w := s.makeRequest("stale-token")

	assert.False(s.T(), s.nextHandler.called)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.JSONEq(s.T(),
		`{"error":"unauthorized","error_description":"Invalid or expired session"}`,
		w.Body.String())
}

func (s *AdminMiddlewareTestSuite) TestValidatorInternalError() {
	s.validator.On("ValidateSessionToken", mock.Anything, "any-token").
		Return(nil, dErrors.New(dErrors.CodeInternal, "session store unavailable"))

	w := s.makeRequest("any-token")

	assert.False(s.T(), s.nextHandler.called)
	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
}

func TestAdminMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AdminMiddlewareTestSuite))
}
