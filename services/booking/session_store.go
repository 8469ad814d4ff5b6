package booking

import (
	"context"
	"encoding/json"
	"fmt"

	"tutorly/models"
	"tutorly/utils"

	"github.com/go-redis/redis/v8"
)

// SessionStore holds in-progress booking sessions. Each session belongs to a
// single booking attempt and expires with its TTL.
type SessionStore interface {
	Save(ctx context.Context, session *models.BookingSession) error
	Get(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Delete(ctx context.Context, sessionID string) error

	// AcquireSubmitLock reports whether this caller won the right to submit
	// the session. The lock is released explicitly or lapses with its TTL.
	AcquireSubmitLock(ctx context.Context, sessionID string) (bool, error)
	ReleaseSubmitLock(ctx context.Context, sessionID string) error
}

// RedisSessionStore implements SessionStore on a Redis client, storing each
// session as a JSON document under utils.SessionTTL.
type RedisSessionStore struct {
	Client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	key := utils.SessionCachePrefix + session.SessionID
	if err := s.Client.Set(ctx, key, data, utils.SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	data, err := s.Client.Get(ctx, utils.SessionCachePrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking session: %w", err)
	}

	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, utils.SessionCachePrefix+sessionID).Err()
}

func (s *RedisSessionStore) AcquireSubmitLock(ctx context.Context, sessionID string) (bool, error) {
	ok, err := s.Client.SetNX(ctx, utils.SubmitLockPrefix+sessionID, "1", utils.SubmitLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	return ok, nil
}

func (s *RedisSessionStore) ReleaseSubmitLock(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, utils.SubmitLockPrefix+sessionID).Err()
}
