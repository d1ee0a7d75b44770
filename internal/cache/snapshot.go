// Package cache keeps the most recent transaction snapshot in memory so that
// repeated period queries do not hit the transaction source every time.
package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const snapshotKey = "snapshot"

// Snapshot holds a single value with a TTL and a generation counter.
//
// Every Invalidate bumps the generation. A loader records the generation it
// started under and stores its result with SetIf, so a load that raced with
// an invalidation is dropped instead of resurrecting stale data.
type Snapshot[T any] struct {
	mu    sync.Mutex
	items *gocache.Cache
	gen   uint64
}

// NewSnapshot creates a snapshot cache. A ttl of zero or less keeps the value
// until the next Invalidate.
func NewSnapshot[T any](ttl time.Duration) *Snapshot[T] {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	cleanup := ttl
	if cleanup == gocache.NoExpiration {
		cleanup = 0
	}
	return &Snapshot[T]{items: gocache.New(ttl, cleanup)}
}

// Get returns the cached value if present and not expired.
func (s *Snapshot[T]) Get() (T, bool) {
	var zero T
	v, ok := s.items.Get(snapshotKey)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Expiration reports when the cached value expires. The time is zero when the
// value never expires. The boolean is false when nothing is cached.
func (s *Snapshot[T]) Expiration() (time.Time, bool) {
	_, exp, ok := s.items.GetWithExpiration(snapshotKey)
	return exp, ok
}

// Generation returns the current generation.
func (s *Snapshot[T]) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// SetIf stores v only when gen is still the current generation. It reports
// whether the value was stored.
func (s *Snapshot[T]) SetIf(gen uint64, v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.items.SetDefault(snapshotKey, v)
	return true
}

// Invalidate drops the cached value and starts a new generation, which it
// returns.
func (s *Snapshot[T]) Invalidate() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.items.Delete(snapshotKey)
	return s.gen
}
