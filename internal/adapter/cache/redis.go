package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lularocha/glossary-builder/internal/config"
	"github.com/lularocha/glossary-builder/internal/domain"
)

// Redis is an expansion cache backed by a Redis server.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisClient connects to the server in cfg and verifies it with PING.
func NewRedisClient(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewRedis wraps client. Keys are stored under prefix and expire after ttl.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

// Get returns the cached expansion for key. A miss is (nil, false, nil).
func (r *Redis) Get(ctx context.Context, key string) (*domain.ExpandedContent, bool, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var content domain.ExpandedContent
	if err := json.Unmarshal(raw, &content); err != nil {
		// Unreadable entries are dropped and treated as a miss.
		_ = r.client.Del(ctx, r.prefix+key).Err()
		return nil, false, nil
	}
	return &content, true, nil
}

// Set stores content under key with the configured TTL.
func (r *Redis) Set(ctx context.Context, key string, content domain.ExpandedContent) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("marshal expansion: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping reports whether the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
