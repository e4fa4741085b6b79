package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/apply-assistant/internal/types"
	"github.com/maypok86/otter"
)

// DefaultProfileCacheTTL is how long a loaded profile is served from memory.
const DefaultProfileCacheTTL = 30 * time.Second

const profileKey = "profile"

// CachedStore serves reads from an in-memory TTL cache and writes through to the wrapped Store.
type CachedStore struct {
	next  Store
	cache otter.Cache[string, *types.Profile]
}

// NewCachedStore wraps next with a cache whose entries expire after ttl.
func NewCachedStore(next Store, ttl time.Duration) (*CachedStore, error) {
	if ttl <= 0 {
		ttl = DefaultProfileCacheTTL
	}
	cache, err := otter.MustBuilder[string, *types.Profile](16).
		WithTTL(ttl).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build profile cache: %w", err)
	}
	return &CachedStore{next: next, cache: cache}, nil
}

// Get returns a copy of the cached profile, loading it on a miss.
func (s *CachedStore) Get(ctx context.Context) (*types.Profile, error) {
	if p, ok := s.cache.Get(profileKey); ok {
		return p.Clone(), nil
	}
	p, err := s.next.Get(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(profileKey, p.Clone())
	return p, nil
}

// Save writes through and refreshes the cache. The cache is dropped when the write fails.
func (s *CachedStore) Save(ctx context.Context, p *types.Profile) error {
	if err := s.next.Save(ctx, p); err != nil {
		s.cache.Delete(profileKey)
		return err
	}
	s.cache.Set(profileKey, p.Clone())
	return nil
}

// Update runs the cycle against the wrapped Store and caches the result.
// The cache is dropped when the cycle fails.
func (s *CachedStore) Update(ctx context.Context, fn func(p *types.Profile) error) (*types.Profile, error) {
	p, err := Update(ctx, s.next, fn)
	if err != nil {
		s.cache.Delete(profileKey)
		return nil, err
	}
	s.cache.Set(profileKey, p.Clone())
	return p, nil
}

// Invalidate drops the cached profile.
func (s *CachedStore) Invalidate() {
	s.cache.Delete(profileKey)
}

// Close releases the cache.
func (s *CachedStore) Close() {
	s.cache.Close()
}
