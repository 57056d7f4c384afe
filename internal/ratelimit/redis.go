package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisLimiter is a fixed-window limiter backed by Redis INCR. Counters carry
// an expiry of twice the window so abandoned buckets clean themselves up.
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
}

// NewRedisLimiter connects to Redis and verifies the connection.
func NewRedisLimiter(addr, password string, db int, window time.Duration, max int) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisLimiter{client: client, window: window, max: max}, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	bucket := bucketIndex(time.Now(), l.window)
	counterKey := fmt.Sprintf("ratelimit:%s:%d", key, bucket)

	count, err := l.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit check failed: %w", err)
	}
	if count == 1 {
		l.client.Expire(ctx, counterKey, 2*l.window)
	}

	if count > int64(l.max) {
		return Decision{Allowed: false, Remaining: 0, RetryAfter: l.window}, nil
	}
	return Decision{Allowed: true, Remaining: l.max - int(count)}, nil
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
