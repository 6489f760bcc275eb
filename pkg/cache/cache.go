// Package cache stores computed layouts so that re-running the engine on
// an unchanged document with unchanged options is a lookup.
//
// Backends:
//
//   - [FileCache]: one JSON file per entry under the user cache directory,
//     the default for the CLI.
//   - [RedisCache]: shared cache for several machines.
//   - [MongoCache]: shared cache with a TTL index.
//   - [NullCache]: caching disabled.
//
// Keys are built by a [Keyer]; [NewScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// TTLLayout is how long a computed layout stays valid.
const TTLLayout = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop all their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}

// LayoutKeyOpts are the layout inputs, besides the document itself, that
// change the result.
type LayoutKeyOpts struct {
	Placer   string `json:"placer"`
	Orderer  string `json:"orderer"`
	Fold     string `json:"fold"`
	Settings string `json:"settings"` // Hash of every remaining option
}

// Keyer builds cache keys.
type Keyer interface {
	LayoutKey(docHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer hashes the key components into a fixed-length key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}
