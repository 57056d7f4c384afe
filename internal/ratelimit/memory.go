package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MemoryLimiter is a fixed-window limiter backed by a mutex-guarded map.
// Rolled-over buckets are purged by a background sweep so the map stays
// bounded by the number of active keys.
type MemoryLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	window time.Duration
	max    int

	stop chan struct{}
	once sync.Once
	now  func() time.Time
}

// NewMemoryLimiter creates a memory limiter and starts its sweep loop.
func NewMemoryLimiter(window time.Duration, max int) *MemoryLimiter {
	l := &MemoryLimiter{
		counts: make(map[string]int),
		window: window,
		max:    max,
		stop:   make(chan struct{}),
		now:    time.Now,
	}
	go l.sweepLoop()
	return l
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	bucket := bucketIndex(l.now(), l.window)
	mapKey := fmt.Sprintf("%s:%d", key, bucket)

	l.mu.Lock()
	l.counts[mapKey]++
	count := l.counts[mapKey]
	l.mu.Unlock()

	if count > l.max {
		return Decision{Allowed: false, Remaining: 0, RetryAfter: l.window}, nil
	}
	return Decision{Allowed: true, Remaining: l.max - count}, nil
}

func (l *MemoryLimiter) Close() error {
	l.once.Do(func() { close(l.stop) })
	return nil
}

func (l *MemoryLimiter) sweepLoop() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep drops counters from buckets older than the previous window.
func (l *MemoryLimiter) sweep() {
	current := bucketIndex(l.now(), l.window)
	suffixCurrent := fmt.Sprintf(":%d", current)
	suffixPrev := fmt.Sprintf(":%d", current-1)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key := range l.counts {
		if !strings.HasSuffix(key, suffixCurrent) && !strings.HasSuffix(key, suffixPrev) {
			delete(l.counts, key)
		}
	}
}
