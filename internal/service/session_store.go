package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinic-appointment-bot/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Redis key prefix for conversation sessions
const sessionKeyPrefix = "conversation:session:"

// SessionStore keeps per-chat-user conversation state in Redis. Every write
// refreshes the TTL, so an abandoned flow evicts itself instead of sitting in
// memory forever. Independent chat users never share a key.
type SessionStore struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewSessionStore(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *SessionStore {
	return &SessionStore{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// Get returns the session for a chat user, or nil when no flow is in
// progress (missing key or expired TTL).
func (s *SessionStore) Get(ctx context.Context, chatUserID int64) (*entity.Session, error) {
	key := sessionKey(chatUserID)

	raw, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session %s: %w", key, err)
	}

	var session entity.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		// A corrupt record is unrecoverable for the flow; drop it so the user
		// starts clean instead of being stuck.
		s.log.Warnf("Dropping corrupt session for chat user %d: %+v", chatUserID, err)
		if delErr := s.redisClient.Del(ctx, key).Err(); delErr != nil {
			return nil, fmt.Errorf("delete corrupt session %s: %w", key, delErr)
		}
		return nil, nil
	}

	return &session, nil
}

// Put stores the session and refreshes its TTL.
func (s *SessionStore) Put(ctx context.Context, session *entity.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session for chat user %d: %w", session.ChatUserID, err)
	}

	key := sessionKey(session.ChatUserID)
	if err := s.redisClient.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("put session %s: %w", key, err)
	}

	return nil
}

// Delete discards the session. Deleting a session that does not exist is not
// an error.
func (s *SessionStore) Delete(ctx context.Context, chatUserID int64) error {
	key := sessionKey(chatUserID)
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", key, err)
	}
	return nil
}

func sessionKey(chatUserID int64) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, chatUserID)
}
