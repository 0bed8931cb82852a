// ABOUTME: TTL cache over a session Store.
// ABOUTME: Entries carry their write time and TTL; expiry is checked lazily on read.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Well-known session keys.
const (
	KeyPromoSeen   = "promo:seen"
	KeyLastContact = "contact:last"
	PrefixTTL      = "ttl:"
)

// entry is the stored envelope. TTLMillis of 0 never expires.
type entry struct {
	Value     json.RawMessage `json:"value"`
	StoredAt  int64           `json:"stored_at"`
	TTLMillis int64           `json:"ttl_ms"`
}

func (e entry) expired(now time.Time) bool {
	if e.TTLMillis <= 0 {
		return false
	}
	return now.UnixMilli() > e.StoredAt+e.TTLMillis
}

// Cache is a keyed TTL cache. Any caller may read or write any key; the last
// writer wins and nothing sweeps expired entries in the background.
type Cache struct {
	store  Store
	now    func() time.Time
	logger *log.Logger
}

// New wraps a Store.
func New(store Store) *Cache {
	return &Cache{store: store, now: time.Now, logger: log.New(io.Discard)}
}

// WithLogger sets where best-effort write failures are reported.
func (c *Cache) WithLogger(logger *log.Logger) *Cache {
	c.logger = logger
	return c
}

// WithClock replaces the time source; used by tests.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Store exposes the underlying session store.
func (c *Cache) Store() Store {
	return c.store
}

// Set stores value under key for ttl. A ttl of 0 keeps it for the session.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	data, err := json.Marshal(entry{
		Value:     raw,
		StoredAt:  c.now().UnixMilli(),
		TTLMillis: ttl.Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return c.store.Set(ctx, key, data)
}

// Get decodes the value for key into dest. It reports false for a missing or
// expired entry; an expired entry is removed as a side effect.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		// Unreadable entries are treated as absent and cleared.
		_ = c.store.Delete(ctx, key)
		return false, nil
	}
	if e.expired(c.now()) {
		if err := c.store.Delete(ctx, key); err != nil {
			return false, err
		}
		return false, nil
	}
	if dest != nil {
		if err := json.Unmarshal(e.Value, dest); err != nil {
			return false, fmt.Errorf("unmarshal %s: %w", key, err)
		}
	}
	return true, nil
}

// Delete removes key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}

// SetFlag marks a session-lifetime boolean flag.
func (c *Cache) SetFlag(ctx context.Context, key string) error {
	return c.Set(ctx, key, true, 0)
}

// HasFlag reports whether a flag was set this session.
func (c *Cache) HasFlag(ctx context.Context, key string) (bool, error) {
	var v bool
	ok, err := c.Get(ctx, key, &v)
	return ok && v, err
}

// Clear deletes every key with the given prefix. An empty prefix clears all.
func (c *Cache) Clear(ctx context.Context, prefix string) (int, error) {
	keys, err := c.store.Keys(ctx, prefix)
	if err != nil {
		return 0, err
	}
	for _, key := range keys {
		if err := c.store.Delete(ctx, key); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}

// GetOrFetch returns the cached value for key, or calls fetch, caches its
// result for ttl, and returns it. Fetch errors are returned without caching.
// A failed cache write is logged and the fetched value is still returned.
func GetOrFetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	ok, err := c.Get(ctx, PrefixTTL+key, &cached)
	if err == nil && ok {
		return cached, nil
	}

	fresh, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := c.Set(ctx, PrefixTTL+key, fresh, ttl); err != nil {
		c.logger.Warn("cache write failed", "key", key, "err", err)
	}
	return fresh, nil
}
