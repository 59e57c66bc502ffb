package cache

import (
	"context"
	"time"
)

// NullCache discards every artifact and misses on every lookup. It stands in
// when render caching is switched off (the --no-cache flag), so callers never
// branch on whether a cache is configured.
type NullCache struct{}

// NewNullCache creates a cache that keeps nothing.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get misses for every key, forcing a fresh render.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set drops the artifact.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete succeeds without having anything to remove.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close has no resources to release.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
