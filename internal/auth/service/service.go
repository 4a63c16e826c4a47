package service

import (
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/lucky-arya/CSIxMKITOS/internal/platform/metrics"
	"github.com/lucky-arya/CSIxMKITOS/pkg/secrets"
)

const defaultSessionTTL = 12 * time.Hour

// Credentials holds the configured admin login. When PasswordHash is set it
// takes precedence over the plaintext Password.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// match verifies a login attempt. Both username and password are always
// compared so timing does not reveal which one was wrong.
func (c Credentials) match(username, password string) bool {
	usernameOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(username)) == 1

	var passwordOK bool
	if c.PasswordHash != "" {
		passwordOK = secrets.Verify(password, c.PasswordHash) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1
	}
	return usernameOK && passwordOK
}

type Service struct {
	sessions       SessionStore
	tokens         TokenService
	creds          Credentials
	sessionTTL     time.Duration
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSessionTTL configures the time-to-live duration for admin sessions.
// If not set or set to zero/negative, defaults to 12 hours.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

func NewService(sessions SessionStore, tokens TokenService, creds Credentials, opts ...Option) *Service {
	svc := &Service{
		sessions:   sessions,
		tokens:     tokens,
		creds:      creds,
		sessionTTL: defaultSessionTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.sessionTTL <= 0 {
		svc.sessionTTL = defaultSessionTTL
	}
	return svc
}
