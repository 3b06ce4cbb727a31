package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when an entry exists but is older
// than the cache TTL. The stale body is still returned alongside it.
var ErrExpired = errors.New("cache entry expired")

// Cache stores response bodies on disk, one file per key.
//
// File names are the SHA-256 of the key, so any URL is a safe key. Entry
// age is the file modification time; [Cache.Set] refreshes it.
type Cache struct {
	dir string
	ttl time.Duration
}

// NewCache creates the directory if needed and returns a cache rooted there.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		return nil, errors.New("httputil: empty cache directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the entry lifetime. Zero means entries never expire.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the body stored under key.
//
//   - (body, true, nil): fresh hit
//   - (nil, false, nil): miss
//   - (body, false, ErrExpired): stale hit
func (c *Cache) Get(key string) ([]byte, bool, error) {
	path := c.keyPath(key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return data, false, ErrExpired
	}
	return data, true, nil
}

// Set stores body under key, replacing any previous entry.
func (c *Cache) Set(key string, body []byte) error {
	return os.WriteFile(c.keyPath(key), body, 0o644)
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}
