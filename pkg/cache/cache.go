// Package cache stores rendered carousel frames between CLI runs.
//
// Rendering a frame is cheap, but the render command may be asked for many
// offsets and formats of the same configuration. Entries are keyed by a hash
// of the configuration plus the frame parameters, so editing the config
// invalidates every frame rendered from it.
//
// # Implementations
//
//   - [FileCache]: one JSON file per entry under a directory
//   - [NullCache]: stores nothing (used for --no-cache)
//   - [Observed]: wraps another cache and reports hits and misses to
//     package observability
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
