// Package cache stores fetched upstream pages so repeated runs (for
// example while tuning a selector) do not hit the upstream every time.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for CI runners
//   - [NullCache]: stores nothing; used when caching is off
//
// Entries expire after the TTL passed to Set. A zero TTL means no expiry.
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored bytes and true on a hit. Misses and expired
	// entries return (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key for ttl.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PageKey returns the cache key for the page at url.
// The scheme and a trailing slash do not distinguish entries.
func PageKey(url string) string {
	u := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	return "page:" + strings.TrimSuffix(u, "/")
}

type refreshKey struct{}

// WithRefresh returns a context under which readers bypass cached entries
// and fetch fresh data. The fresh data is still written back.
func WithRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, refreshKey{}, true)
}

// Refreshing reports whether ctx came from [WithRefresh].
func Refreshing(ctx context.Context) bool {
	v, _ := ctx.Value(refreshKey{}).(bool)
	return v
}
