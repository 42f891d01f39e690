package searoute

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

// Entry is a cached path and the moment it was fetched.
type Entry struct {
	Path      Path
	FetchedAt time.Time
}

// Cache holds fetched paths. Freshness is decided by the caller's ttl at read
// time, not by the cache.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]Entry
	maxEntries int
	now        func() time.Time
}

func NewCache(maxEntries int) *Cache {
	return &Cache{
		entries:    make(map[string]Entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the entry for key if it was fetched less than ttl ago.
func (c *Cache) Get(key string, ttl time.Duration) (Entry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().Sub(entry.FetchedAt) >= ttl {
		return Entry{}, false
	}
	return entry, true
}

// Set stores path under key. When the cache is full the oldest entry makes
// room, so Len never exceeds maxEntries.
func (c *Cache) Set(key string, path Path) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok && c.maxEntries > 0 {
		for len(c.entries) >= c.maxEntries {
			c.evictOldest()
		}
	}
	c.entries[key] = Entry{Path: path, FetchedAt: c.now()}
}

// evictOldest drops the entry with the earliest FetchedAt. Callers hold mu.
func (c *Cache) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for k, v := range c.entries {
		if !found || v.FetchedAt.Before(oldest) {
			oldestKey, oldest, found = k, v.FetchedAt, true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Prune drops entries older than ttl, rebuilding the map to give memory back.
func (c *Cache) Prune(ttl time.Duration) int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	fresh := make(map[string]Entry, len(c.entries)/2)
	for k, v := range c.entries {
		if now.Sub(v.FetchedAt) < ttl {
			fresh[k] = v
		}
	}
	dropped := len(c.entries) - len(fresh)
	c.entries = fresh
	return dropped
}

// CachingResolver answers repeated origin/destination pairs from a Cache.
type CachingResolver struct {
	next  Resolver
	cache *Cache
	ttl   time.Duration
}

func NewCachingResolver(next Resolver, cache *Cache, ttl time.Duration) *CachingResolver {
	return &CachingResolver{next: next, cache: cache, ttl: ttl}
}

func cacheKey(origin, destination models.GeoPoint) string {
	return fmt.Sprintf("%.5f,%.5f>%.5f,%.5f", origin.Lat, origin.Lng, destination.Lat, destination.Lng)
}

func (r *CachingResolver) Resolve(ctx context.Context, origin, destination models.GeoPoint) (Path, error) {
	key := cacheKey(origin, destination)
	if entry, ok := r.cache.Get(key, r.ttl); ok {
		return entry.Path, nil
	}

	path, err := r.next.Resolve(ctx, origin, destination)
	if err != nil {
		return Path{}, err
	}

	if r.cache.maxEntries > 0 && r.cache.Len() >= r.cache.maxEntries {
		r.cache.Prune(r.ttl)
	}
	r.cache.Set(key, path)
	return path, nil
}
