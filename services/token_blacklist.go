package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist records revoked access tokens until their natural expiry.
// Backed by the same Redis instance as the session cache; when Redis is not
// configured the blacklist is a no-op and logout relies on session records.
type TokenBlacklist struct {
	client *redis.Client
}

func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

func (tb *TokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if tb == nil || tb.client == nil || ttl <= 0 {
		return nil
	}
	return tb.client.Set(ctx, blacklistKey(token), "1", ttl).Err()
}

func (tb *TokenBlacklist) IsRevoked(ctx context.Context, token string) bool {
	if tb == nil || tb.client == nil {
		return false
	}
	n, err := tb.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		log.Printf("token blacklist lookup failed: %v", err)
		return false
	}
	return n > 0
}

// Client exposes the underlying Redis client so the blacklist and the
// session cache can share one connection.
func (sc *SessionCache) Client() *redis.Client {
	return sc.client
}
