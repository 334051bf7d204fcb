// Package cache is a small in-process TTL cache for read-mostly data such as the pokedex tables.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/L3Technosmith/pkmnFoundations/internal/platform/resilience"
)

const shardCount = 8

type slot[V any] struct {
	value    V
	deadline time.Time
}

type shard[V any] struct {
	sync.RWMutex
	slots map[string]slot[V]
}

// Store maps string keys to values of one type, spread over shards by key hash.
// A ttl of zero keeps entries until they are deleted. The empty key is never cached.
type Store[V any] struct {
	shards [shardCount]shard[V]
	ttl    time.Duration
	loads  resilience.Flight[V]
	clock  func() time.Time
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	s := &Store[V]{ttl: ttl, clock: time.Now}
	for i := range s.shards {
		s.shards[i].slots = make(map[string]slot[V])
	}
	return s
}

func (s *Store[V]) shardOf(key string) *shard[V] {
	return &s.shards[xxhash.Sum64String(key)%shardCount]
}

func (s *Store[V]) live(e slot[V]) bool {
	return e.deadline.IsZero() || s.clock().Before(e.deadline)
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}
	sh := s.shardOf(key)

	sh.RLock()
	e, ok := sh.slots[key]
	sh.RUnlock()
	switch {
	case !ok:
		return zero, false
	case s.live(e):
		return e.value, true
	}

	sh.Lock()
	// a concurrent Set may have refreshed it
	if cur, ok := sh.slots[key]; ok && !s.live(cur) {
		delete(sh.slots, key)
	}
	sh.Unlock()
	return zero, false
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}
	e := slot[V]{value: value}
	if s.ttl > 0 {
		e.deadline = s.clock().Add(s.ttl)
	}

	sh := s.shardOf(key)
	sh.Lock()
	sh.slots[key] = e
	sh.Unlock()
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	sh := s.shardOf(key)
	sh.Lock()
	delete(sh.slots, key)
	sh.Unlock()
}

// DeletePrefix drops every key starting with prefix. An empty prefix is a no-op, not a flush.
func (s *Store[V]) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}
	for i := range s.shards {
		sh := &s.shards[i]
		sh.Lock()
		for key := range sh.slots {
			if strings.HasPrefix(key, prefix) {
				delete(sh.slots, key)
			}
		}
		sh.Unlock()
	}
}

// GetOrLoad returns the cached value for key, or runs load once for all concurrent callers and
// caches its result. Failed loads are not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	if key == "" {
		return load(ctx)
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	v, _, err := s.loads.Do(ctx, key, func() (V, error) {
		if v, ok := s.Get(ctx, key); ok {
			return v, nil
		}
		v, err := load(ctx)
		if err == nil {
			s.Set(ctx, key, v)
		}
		return v, err
	})
	return v, err
}
