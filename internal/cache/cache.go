package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"triangulate/internal/model"
)

// Cache defines the interface for caching fetched pages and other
// expensive lookups
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from a URL
func CacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "triangulate:v1:" + hex.EncodeToString(hash[:])
}

// FromConfig builds the configured cache. Disabled caching returns nil;
// callers treat a nil cache as a pass-through.
func FromConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	dir := cfg.Dir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = os.TempDir()
		}
		dir = filepath.Join(base, "triangulate")
	}
	return NewLayeredCache(cfg.MemoryTTL, dir, cfg.DiskTTL)
}
