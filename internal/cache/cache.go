// Package cache stores computed escape results so that repeated grids skip
// propagation.
//
// Cache is a byte-level key/value store with per-entry TTL; NullCache,
// MemoryCache, FileCache and RedisCache implement it. Results layers
// escape snapshots on top of any Cache, keyed by the SHA-256 of the grid's
// text form.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with optional expiry. A zero ttl means the
// entry never expires. Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the stored bytes and true, or false on a miss or an
	// expired entry.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}
