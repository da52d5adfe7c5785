package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevokedSessionKeyPrefix is the Redis key prefix for revoked session ids.
const RevokedSessionKeyPrefix = "revoked_session:"

// RevocationList remembers session ids that were logged out before they expired.
type RevocationList interface {
	Revoke(ctx context.Context, sessionID string, until time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// RedisRevocationList keeps revoked ids as keys that expire with the token.
type RedisRevocationList struct {
	client *redis.Client
}

func NewRedisRevocationList(client *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{client: client}
}

func (l *RedisRevocationList) Revoke(ctx context.Context, sessionID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return l.client.Set(ctx, RevokedSessionKeyPrefix+sessionID, "1", ttl).Err()
}

func (l *RedisRevocationList) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := l.client.Exists(ctx, RevokedSessionKeyPrefix+sessionID).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}
	return n > 0, nil
}

// MemoryRevocationList is the single-instance fallback used without Redis.
type MemoryRevocationList struct {
	mu      sync.Mutex
	entries map[string]time.Time
	Now     func() time.Time
}

func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{entries: make(map[string]time.Time), Now: time.Now}
}

func (l *MemoryRevocationList) Revoke(ctx context.Context, sessionID string, until time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.Now()
	for id, exp := range l.entries {
		if !exp.After(now) {
			delete(l.entries, id)
		}
	}
	if until.After(now) {
		l.entries[sessionID] = until
	}
	return nil
}

func (l *MemoryRevocationList) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	exp, ok := l.entries[sessionID]
	return ok && exp.After(l.Now()), nil
}
