package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alnah/go-mvpbuild/internal/config"
)

// ErrRedis wraps failures talking to Redis.
var ErrRedis = errors.New("redis store error")

// RedisStore keeps pages as plain string values under <prefix>page:<ideaId>.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore. The connection is opened lazily by
// the first command.
func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	return NewRedisStoreWithClient(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), cfg.KeyPrefix, cfg.TTL)
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) key(ideaID string) string {
	return r.prefix + "page:" + ideaID
}

// Put stores html, replacing any previous page. A zero TTL never expires.
func (r *RedisStore) Put(ctx context.Context, ideaID, html string) error {
	if ideaID == "" {
		return ErrEmptyIdeaID
	}
	if err := r.client.Set(ctx, r.key(ideaID), html, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrRedis, ideaID, err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, ideaID string) (string, error) {
	html, err := r.client.Get(ctx, r.key(ideaID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: get %s: %v", ErrRedis, ideaID, err)
	}
	return html, nil
}

func (r *RedisStore) Delete(ctx context.Context, ideaID string) error {
	if err := r.client.Del(ctx, r.key(ideaID)).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrRedis, ideaID, err)
	}
	return nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping: %v", ErrRedis, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
