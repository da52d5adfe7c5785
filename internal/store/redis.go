package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix is the key prefix for persisted documents.
const RedisKeyPrefix = "ledger:document:"

// RedisBackend stores the encoded document under one Redis key with no expiry.
type RedisBackend struct {
	client *redis.Client
	key    string
}

func NewRedisBackend(client *redis.Client, name string) *RedisBackend {
	return &RedisBackend{client: client, key: RedisKeyPrefix + name}
}

func (b *RedisBackend) Name() string { return "redis:" + b.key }

func (b *RedisBackend) Load(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoDocument
	}
	return data, err
}

func (b *RedisBackend) Save(ctx context.Context, data []byte) error {
	return b.client.Set(ctx, b.key, data, 0).Err()
}

// Close is a no-op; the client is shared with other components.
func (b *RedisBackend) Close() error { return nil }
