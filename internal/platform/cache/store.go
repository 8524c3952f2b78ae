// Package cache holds a small in-process TTL map with coalesced loads.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

var errNilLoader = errors.New("cache: loader is required")

type item[V any] struct {
	value   V
	expires time.Time
}

func (it item[V]) expired(now time.Time) bool {
	return !it.expires.IsZero() && !now.Before(it.expires)
}

// Store maps keys to values of one type. A zero ttl keeps entries until they
// are deleted.
type Store[V any] struct {
	mu    sync.RWMutex
	items map[string]item[V]
	ttl   time.Duration
	group singleflight.Group
	now   func() time.Time
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		items: make(map[string]item[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if it.expired(s.now()) {
		s.mu.Lock()
		if cur, still := s.items[key]; still && cur.expired(s.now()) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return zero, false
	}
	return it.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	it := item[V]{value: value}
	if s.ttl > 0 {
		it.expires = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.items[key] = it
	s.mu.Unlock()
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	s.group.Forget(key)
}

// Len counts live entries.
func (s *Store[V]) Len() int {
	now := s.now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, it := range s.items {
		if !it.expired(now) {
			n++
		}
	}
	return n
}

// GetOrLoad returns the cached value for key or runs load once for all
// concurrent callers. Failed loads are not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	var zero V
	if load == nil {
		return zero, errNilLoader
	}
	if key == "" {
		return load(ctx)
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	out, err, _ := s.group.Do(key, func() (any, error) {
		if v, ok := s.Get(ctx, key); ok {
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, v)
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	return out.(V), nil
}
