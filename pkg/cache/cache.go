// Package cache stores computed layouts and rendered artifacts so repeated
// runs over the same record set skip the simulation.
//
// Keys are derived from content hashes: the graph key hashes the raw relation
// records, the layout key adds the simulation options, the artifact key adds
// the output format. Backends: [FileCache] for the CLI, [RedisCache] for the
// server, [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// TTLs per entry kind. Graphs are rebuilt cheaply so they expire first;
// settled layouts and rendered artifacts are the expensive products.
const (
	TTLGraph    = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (zero means no expiry).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the simulation parameters that change a layout's
// identity. Two runs with equal records and equal opts produce equal
// layouts, so they may share a cache entry.
type LayoutKeyOpts struct {
	Width  float64
	Height float64
	Seed   int64

	// Force overrides; zero means the simulation default.
	LinkDistance  float64
	Repulsion     float64
	CollideRadius float64
}

// GraphKey derives the cache key for a built graph from the raw record
// bytes.
func GraphKey(records []byte) string {
	return hashKey("graph", Hash(records))
}

// LayoutKey derives the cache key for a settled layout.
func LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKeyOpts are the render parameters that change an artifact's
// identity.
type ArtifactKeyOpts struct {
	Format     string
	ShowLabels bool
}

// ArtifactKey derives the cache key for a rendered artifact.
func ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
