package translation

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/parlami/internal/storage"
)

// DefaultCacheTTL is how long a cached translation is served.
const DefaultCacheTTL = 7 * 24 * time.Hour

type cacheEntry struct {
	Translation string `json:"translation"`
	// Timestamp is in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// Cache stores translations in the key-value store, keyed by text and
// language pair.
type Cache struct {
	store storage.Store
	ttl   time.Duration
	now   func() time.Time
}

func NewCache(store storage.Store, ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{store: store, ttl: ttl, now: now}
}

// CacheKey returns the storage key of a translation.
func CacheKey(text, from, to string) string {
	return fmt.Sprintf("translation_%s_%s_%s", from, to, text)
}

// Get returns a cached translation younger than the TTL. Expired and
// malformed entries are misses.
func (c *Cache) Get(ctx context.Context, text, from, to string) (string, bool, error) {
	var entry cacheEntry
	ok, err := storage.GetJSON(ctx, c.store, CacheKey(text, from, to), &entry)
	if err != nil || !ok {
		return "", false, err
	}
	age := c.now().Sub(time.UnixMilli(entry.Timestamp))
	if age >= c.ttl {
		return "", false, nil
	}
	return entry.Translation, true, nil
}

func (c *Cache) Set(ctx context.Context, text, from, to, translation string) error {
	return storage.SetJSON(ctx, c.store, CacheKey(text, from, to), cacheEntry{
		Translation: translation,
		Timestamp:   c.now().UnixMilli(),
	})
}
