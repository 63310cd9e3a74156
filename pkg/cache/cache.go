// Package cache stores computed layouts and rendered artifacts.
//
// A [Cache] is a byte store with per-entry TTLs. Three backends exist:
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//
// Keys come from a [Keyer] so the CLI and server agree on cache layout:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(sceneJSON), cache.LayoutKeyOpts{Straight: true})
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    // decode cached layout
//	}
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached entries.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLRegions  = 5 * time.Minute
)

// Cache is a key/value byte store with expiring entries.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
