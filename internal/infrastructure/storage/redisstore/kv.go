package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/localhub/domain"
)

// KV implements domain.KeyValueStore on Redis
type KV struct {
	client *redis.Client
}

// NewKV creates a Redis-backed store
func NewKV(client *redis.Client) *KV {
	return &KV{client: client}
}

// Get implements domain.KeyValueStore
func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := k.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set implements domain.KeyValueStore; ttl <= 0 keeps the key forever
func (k *KV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return k.client.Set(ctx, key, value, ttl).Err()
}

// Del implements domain.KeyValueStore
func (k *KV) Del(ctx context.Context, key string) error {
	return k.client.Del(ctx, key).Err()
}

var _ domain.KeyValueStore = (*KV)(nil)
