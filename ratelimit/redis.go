// File: ratelimit/redis.go
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"recruit-portal/logger"
)

// redisCommands is the slice of the go-redis API the limiter issues.
// Narrowed so tests can substitute a scripted fake for a live server.
type redisCommands interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RedisLimiter counts in Redis so the window is shared across replicas.
// Same fixed-window semantics as MemoryLimiter: INCR opens or extends the
// count, EXPIRE on the first hit bounds the window, TTL is the retry-after.
type RedisLimiter struct {
	client redisCommands
}

// NewRedisLimiter wraps an existing Redis client.
func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client}
}

// Allow implements Limiter. Redis failures fail open: blocking every
// request on a cache outage would be worse than briefly losing the limit.
func (l *RedisLimiter) Allow(action, subject string, max int, window time.Duration) (bool, time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	key := "ratelimit:" + action + ":" + subject

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		logger.Warn.Printf("RedisLimiter: INCR %s failed, allowing request: %v", key, err)
		return true, 0
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			logger.Warn.Printf("RedisLimiter: EXPIRE %s failed: %v", key, err)
		}
	}
	if count <= int64(max) {
		return true, 0
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}
	return false, ttl
}
