package redis

import (
	"context"
	"errors"
	"time"

	"github.com/iamasit07/5-in-a-row/backend/internal/config"
	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const ErrCacheMiss domain.Error = "cache miss"

// Connect opens a client for cfg.RedisURL. It returns nil when no URL is
// configured or the server cannot be reached, so callers run without a cache.
func Connect(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		log.Info().Msg("[REDIS] REDIS_URL not set, analysis cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisURL).Msg("[REDIS] Could not connect, analysis cache disabled")
		_ = client.Close()
		return nil
	}

	log.Info().Str("addr", cfg.RedisURL).Msg("[REDIS] Connected successfully")
	return client
}

// RedisCache acts as a wrapper around redis.Client for the analysis cache.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Set stores a key-value pair with expiration
func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key. A missing key is reported as ErrCacheMiss.
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return value, err
}

func (r *RedisCache) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
