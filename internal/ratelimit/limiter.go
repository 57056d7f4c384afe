package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of a rate-limit check.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts requests per key in fixed, non-overlapping time windows.
// The bucket index is floor(unix(now) / window); a key may make at most the
// configured maximum requests within one bucket.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Close() error
}

// bucketIndex returns the fixed-window bucket for the given instant.
func bucketIndex(now time.Time, window time.Duration) int64 {
	return now.Unix() / int64(window/time.Second)
}
