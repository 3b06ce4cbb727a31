// Package cache stores rendered star map artifacts.
//
// Rendering is deterministic: the same catalog and options always produce the
// same document, so artifacts are keyed by a hash of both. Backends:
//
//   - [FileCache] for the CLI, under the user cache directory
//   - [RedisCache] for sharing artifacts between hosts
//   - [NullCache] when caching is disabled
package cache

import (
	"context"
	"fmt"
	"time"
)

// TTLArtifact is how long rendered artifacts are kept.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key succeeds.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts identifies one rendered output of a catalog.
type ArtifactKeyOpts struct {
	VizType     string `json:"viz_type"`
	Format      string `json:"format"`
	OptionsHash string `json:"options_hash"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for one artifact of the catalog whose
	// content hash is catalogHash.
	ArtifactKey(catalogHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(catalogHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", catalogHash, opts)
}

// ScopedKeyer prefixes every key, e.g. with the program version so that a new
// release never serves documents rendered by an older one.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(catalogHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(catalogHash, opts)
}

// VersionPrefix formats a ScopedKeyer prefix for a program version.
func VersionPrefix(version string) string {
	return fmt.Sprintf("starmap:%s:", version)
}
