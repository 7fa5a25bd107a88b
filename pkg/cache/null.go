package cache

import (
	"context"
	"time"
)

// NullCache misses every read and discards every write. It backs --no-cache
// and the "none" backend, forcing the pipeline to rebuild the graph, resettle
// the layout, and rerender on every run.
type NullCache struct{}

// NewNullCache returns a cache that never stores anything.
func NewNullCache() Cache { return NullCache{} }

// Get always misses.
func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete is a no-op.
func (NullCache) Delete(ctx context.Context, key string) error { return nil }

// Close is a no-op.
func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
