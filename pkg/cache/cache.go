// Package cache stores rendered artifacts between pipeline runs.
//
// # Overview
//
// Rendering a grid's topology graph through Graphviz is the most expensive
// step of the pipeline, and the same geometry is often rendered repeatedly,
// for example when an API client polls a live grid that has not changed. The
// pipeline therefore keys artifacts by a content hash of the layout they
// were rendered from.
//
// Two implementations are provided:
//
//   - [MemoryCache]: process-local map with per-entry expiry
//   - [NullCache]: never stores anything, disabling caching
//
// Keys are produced by a [Keyer]. [ScopedKeyer] prefixes keys so that
// several owners, such as live grids in the API server, can share one cache
// without colliding.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is the default lifetime of a cached artifact.
const TTLArtifact = 10 * time.Minute

// Cache is a byte-oriented key-value store with expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
