// Package fetch - cached.go provides an in-memory TTL cache in front of URL fetching.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/maypok86/otter"
)

// DefaultPageCacheTTL is how long a fetched page is reused.
const DefaultPageCacheTTL = 15 * time.Minute

// DefaultPageCacheSize is the maximum number of cached pages.
const DefaultPageCacheSize = 256

// CachedFetcher wraps URL fetching with an in-memory TTL cache keyed by URL.
// Only successful fetches are cached.
type CachedFetcher struct {
	cache     otter.Cache[string, *Result]
	options   *Options
	skipCache bool
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	CacheSize int
	SkipCache bool
	Options   *Options
}

// DefaultCachedFetcherConfig returns sensible defaults.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL:  DefaultPageCacheTTL,
		CacheSize: DefaultPageCacheSize,
		Options:   DefaultOptions(),
	}
}

// NewCachedFetcher creates a new cached fetcher.
func NewCachedFetcher(config *CachedFetcherConfig) (*CachedFetcher, error) {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = DefaultPageCacheTTL
	}
	if config.CacheSize <= 0 {
		config.CacheSize = DefaultPageCacheSize
	}

	cache, err := otter.MustBuilder[string, *Result](config.CacheSize).
		WithTTL(config.CacheTTL).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build page cache: %w", err)
	}

	return &CachedFetcher{
		cache:     cache,
		options:   config.Options,
		skipCache: config.SkipCache,
	}, nil
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
}

// Fetch retrieves a URL, returning the cached page when still fresh.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	if !f.skipCache {
		if cached, ok := f.cache.Get(urlStr); ok {
			return &CachedResult{Result: cached, FromCache: true}, nil
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	if !f.skipCache {
		f.cache.Set(urlStr, result)
	}
	return &CachedResult{Result: result}, nil
}

// Invalidate drops a URL from the cache.
func (f *CachedFetcher) Invalidate(urlStr string) {
	f.cache.Delete(urlStr)
}

// Close releases the cache.
func (f *CachedFetcher) Close() {
	f.cache.Close()
}
