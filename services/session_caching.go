package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"chronotes/model"
)

// SessionCache keeps active sessions in Redis so the session middleware does
// not hit Mongo on every request. Entries expire with the session.
type SessionCache struct {
	client *redis.Client
}

var ErrSessionNotCached = errors.New("session not in cache")

func NewSessionCache(redisURL string) (*SessionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &SessionCache{client: client}, nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (sc *SessionCache) SetSession(ctx context.Context, session *model.Session) error {
	if session == nil {
		return errors.New("cannot cache nil session")
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session has already expired")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return sc.client.Set(ctx, sessionKey(session.SessionID), data, ttl).Err()
}

func (sc *SessionCache) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	data, err := sc.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached session: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached session: %w", err)
	}
	return &session, nil
}

func (sc *SessionCache) InvalidateSession(ctx context.Context, sessionID string) error {
	return sc.client.Del(ctx, sessionKey(sessionID)).Err()
}

// InvalidateUserSessions drops every cached session for a user. Used by
// logout-all and account deletion.
func (sc *SessionCache) InvalidateUserSessions(ctx context.Context, sessions []*model.Session) error {
	keys := make([]string, 0, len(sessions))
	for _, s := range sessions {
		keys = append(keys, sessionKey(s.SessionID))
	}
	if len(keys) == 0 {
		return nil
	}
	return sc.client.Del(ctx, keys...).Err()
}
