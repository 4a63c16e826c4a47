package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lucky-arya/CSIxMKITOS/internal/auth/models"
	"github.com/lucky-arya/CSIxMKITOS/internal/sentinel"
)

const (
	// Redis key prefix for admin session data
	sessionKeyPrefix = "admin_session:"

	// defaultSessionTTL is the fallback TTL when session expiry cannot be determined.
	defaultSessionTTL = 24 * time.Hour
)

// sessionJSON is the JSON-serializable representation of an AdminSession.
// We use explicit JSON tags to control serialization format.
type sessionJSON struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Status     string `json:"status"`
	CreatedAt  int64  `json:"created_at"`           // Unix nano
	ExpiresAt  int64  `json:"expires_at"`           // Unix nano
	LastSeenAt int64  `json:"last_seen_at"`         // Unix nano
	RevokedAt  *int64 `json:"revoked_at,omitempty"` // Unix nano
}

func sessionToJSON(s *models.AdminSession) *sessionJSON {
	j := &sessionJSON{
		ID:         s.ID,
		Username:   s.Username,
		Status:     string(s.Status),
		CreatedAt:  s.CreatedAt.UnixNano(),
		ExpiresAt:  s.ExpiresAt.UnixNano(),
		LastSeenAt: s.LastSeenAt.UnixNano(),
	}
	if s.RevokedAt != nil {
		ts := s.RevokedAt.UnixNano()
		j.RevokedAt = &ts
	}
	return j
}

func sessionFromJSON(j *sessionJSON) *models.AdminSession {
	s := &models.AdminSession{
		ID:         j.ID,
		Username:   j.Username,
		Status:     models.SessionStatus(j.Status),
		CreatedAt:  time.Unix(0, j.CreatedAt),
		ExpiresAt:  time.Unix(0, j.ExpiresAt),
		LastSeenAt: time.Unix(0, j.LastSeenAt),
	}
	if j.RevokedAt != nil {
		t := time.Unix(0, *j.RevokedAt)
		s.RevokedAt = &t
	}
	return s
}

// RedisStore persists admin sessions in Redis so they survive restarts and can
// be shared by multiple instances.
type RedisStore struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed session store.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *RedisStore) Create(ctx context.Context, session *models.AdminSession) error {
	if session == nil {
		return fmt.Errorf("session is required: %w", sentinel.ErrInvalidInput)
	}

	data, err := json.Marshal(sessionToJSON(session))
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	if err := s.client.Set(ctx, s.sessionKey(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, sessionID string) (*models.AdminSession, error) {
	data, err := s.client.Get(ctx, s.sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find session by id: %w", err)
	}

	var j sessionJSON
	if err := json.Unmarshal([]byte(data), &j); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return sessionFromJSON(&j), nil
}

func (s *RedisStore) Update(ctx context.Context, session *models.AdminSession) error {
	key := s.sessionKey(session.ID)

	// Preserve the remaining TTL so updates don't extend session lifetime.
	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		if remaining := time.Until(session.ExpiresAt); remaining > 0 {
			ttl = remaining
		} else {
			ttl = defaultSessionTTL
		}
	}

	data, err := json.Marshal(sessionToJSON(session))
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op for Redis; key TTLs expire sessions natively.
func (s *RedisStore) DeleteExpired(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

var _ Store = (*RedisStore)(nil)
