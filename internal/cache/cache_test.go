package cache

import (
	"testing"
	"time"

	"triangulate/internal/model"
)

func TestCacheKeyStable(t *testing.T) {
	a := CacheKey("https://example.com/page")
	b := CacheKey("https://example.com/page")
	if a != b {
		t.Errorf("same URL produced different keys: %s vs %s", a, b)
	}
	if a == CacheKey("https://example.com/other") {
		t.Error("different URLs produced the same key")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := CacheKey("https://example.com/page")

	if _, found := c.Get(key); found {
		t.Fatal("expected miss on empty cache")
	}
	if err := c.Set(key, []byte("page body"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get(key)
	if !found || string(val) != "page body" {
		t.Errorf("Get = %q, %v; want %q, true", val, found, "page body")
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := CacheKey("https://example.com/stale")

	if err := c.Set(key, []byte("old"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("expected expired entry to miss")
	}
}

func TestLayeredCachePromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)
	key := CacheKey("https://example.com/page")

	// Seed disk only, simulating a fresh process with a warm disk cache
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set(key, []byte("cached"), 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	val, found := c.Get(key)
	if !found || string(val) != "cached" {
		t.Fatalf("layered Get = %q, %v; want %q, true", val, found, "cached")
	}

	// After promotion a memory hit must work even if disk is cleared
	if err := disk.Clear(); err != nil {
		t.Fatalf("clear disk: %v", err)
	}
	if _, found := c.Get(key); !found {
		t.Error("expected promoted entry in memory layer")
	}
}

func TestFromConfigDisabled(t *testing.T) {
	if c := FromConfig(model.CacheConfig{Enabled: false}); c != nil {
		t.Error("disabled config should produce a nil cache")
	}
}
