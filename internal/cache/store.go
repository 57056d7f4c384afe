package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"
)

// Entry is a cached upstream response.
type Entry struct {
	StatusCode  int       `json:"status_code"`
	ContentType string    `json:"content_type"`
	Body        []byte    `json:"body"`
	StoredAt    time.Time `json:"stored_at"`
}

// Store is the narrow interface the relay depends on. Implementations decide
// where entries live and how they expire.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, bool, error)
	Set(ctx context.Context, key string, entry *Entry) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key derives the cache key for a relayed request from the upstream URL and
// the raw request body.
func Key(upstream string, body []byte) string {
	sum := sha256.Sum256(body)
	return fmt.Sprintf("response:%s:%x", upstream, sum)
}
