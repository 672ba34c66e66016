package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"famwealth/src/clients/brokers"
	"famwealth/src/utils"
	redis_utils "famwealth/src/utils/redis"
)

var ErrSessionNotFound = errors.New("broker session not found")

// SessionStore keeps broker sessions between the login call and later syncs.
type SessionStore interface {
	Save(ctx context.Context, session *brokers.Session, ttl time.Duration) error
	// Load returns ErrSessionNotFound for missing and expired sessions.
	Load(ctx context.Context, userID, broker string) (*brokers.Session, error)
	Delete(ctx context.Context, userID, broker string) error
}

func sessionKey(userID, broker string) string {
	return fmt.Sprintf("broker_session:%s:%s", userID, broker)
}

// sessionTTL caps ttl at the broker's own expiry when one is known. A negative
// result means the session is already expired.
func sessionTTL(session *brokers.Session, ttl time.Duration, now time.Time) time.Duration {
	if session.ExpiresAt.IsZero() {
		return ttl
	}
	untilExpiry := session.ExpiresAt.Sub(now)
	if untilExpiry <= 0 {
		return -1
	}
	if ttl <= 0 || untilExpiry < ttl {
		return untilExpiry
	}
	return ttl
}

type RedisSessionStore struct {
	redis *redis_utils.RedisHandler
	now   func() time.Time
}

func NewRedisSessionStore(handler *redis_utils.RedisHandler) *RedisSessionStore {
	return &RedisSessionStore{redis: handler, now: time.Now}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *brokers.Session, ttl time.Duration) error {
	ttl = sessionTTL(session, ttl, s.now())
	if ttl < 0 {
		return fmt.Errorf("%s session already expired", session.Broker)
	}
	return s.redis.Set(ctx, sessionKey(session.UserID, session.Broker), session, ttl)
}

func (s *RedisSessionStore) Load(ctx context.Context, userID, broker string) (*brokers.Session, error) {
	var session brokers.Session
	if err := s.redis.Get(ctx, sessionKey(userID, broker), &session); err != nil {
		if errors.Is(err, redis_utils.ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.Expired(s.now()) {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, userID, broker string) error {
	return s.redis.Delete(ctx, sessionKey(userID, broker))
}

// MemorySessionStore is used when no Redis is configured. Sessions do not
// survive a restart and are not shared with the worker.
type MemorySessionStore struct {
	cache *utils.Cache[brokers.Session]
	now   func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{cache: utils.NewCache[brokers.Session](), now: time.Now}
}

func (s *MemorySessionStore) Save(_ context.Context, session *brokers.Session, ttl time.Duration) error {
	ttl = sessionTTL(session, ttl, s.now())
	if ttl < 0 {
		return fmt.Errorf("%s session already expired", session.Broker)
	}
	s.cache.Set(sessionKey(session.UserID, session.Broker), *session, ttl)
	return nil
}

func (s *MemorySessionStore) Load(_ context.Context, userID, broker string) (*brokers.Session, error) {
	session, ok := s.cache.Get(sessionKey(userID, broker))
	if !ok || session.Expired(s.now()) {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, userID, broker string) error {
	s.cache.Delete(sessionKey(userID, broker))
	return nil
}
