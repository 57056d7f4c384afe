package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a bounded in-memory TTL store. Expired entries are dropped
// lazily on read and purged by a background sweep once they are older than
// twice the TTL, so the map never grows without bound.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    map[string]*Entry
	ttl        time.Duration
	maxEntries int

	stop chan struct{}
	once sync.Once
	now  func() time.Time
}

// NewMemoryStore creates a memory store with the given TTL and entry bound
// and starts its sweep loop.
func NewMemoryStore(ttl time.Duration, maxEntries int) *MemoryStore {
	s := &MemoryStore{
		entries:    make(map[string]*Entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		stop:       make(chan struct{}),
		now:        time.Now,
	}
	go s.sweepLoop()
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Entry, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if s.now().Sub(entry.StoredAt) >= s.ttl {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}
	return entry, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.maxEntries {
		s.evictOldestLocked()
	}
	s.entries[key] = entry
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

// Len reports the current number of entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for key, entry := range s.entries {
		if oldestKey == "" || entry.StoredAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.StoredAt
		}
	}
	if oldestKey != "" {
		delete(s.entries, oldestKey)
	}
}

func (s *MemoryStore) sweepLoop() {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	cutoff := s.now().Add(-2 * s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if entry.StoredAt.Before(cutoff) {
			delete(s.entries, key)
		}
	}
}
