// ABOUTME: Tests for the TTL cache and the badger session store.
// ABOUTME: Uses an in-memory badger store and a controllable clock.
package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func setupCache(t *testing.T) (*Cache, *fakeClock) {
	t.Helper()
	store, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	return New(store).WithClock(clock.now), clock
}

func TestSetGet(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "plans", []string{"basic", "pro"}, time.Minute))

	var got []string
	ok, err := c.Get(ctx, "plans", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"basic", "pro"}, got)
}

func TestExpiredEntryIsRemovedOnRead(t *testing.T) {
	c, clock := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	clock.advance(59 * time.Second)

	ok, err := c.Get(ctx, "k", nil)
	require.NoError(t, err)
	assert.True(t, ok, "entry should still be live before TTL")

	clock.advance(2 * time.Second)
	ok, err = c.Get(ctx, "k", nil)
	require.NoError(t, err)
	assert.False(t, ok, "entry should be expired")

	_, err = c.Store().Get(ctx, "k")
	assert.True(t, errors.Is(err, ErrNotFound), "expired entry should have been deleted")
}

func TestExpiryIsLazy(t *testing.T) {
	c, clock := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, time.Second))
	clock.advance(time.Hour)

	// Nothing sweeps: the raw entry is still there until someone reads it.
	_, err := c.Store().Get(ctx, "k")
	assert.NoError(t, err)
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c, clock := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetFlag(ctx, KeyPromoSeen))
	clock.advance(365 * 24 * time.Hour)

	seen, err := c.HasFlag(ctx, KeyPromoSeen)
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestLastWriterWins(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "first", 0))
	require.NoError(t, c.Set(ctx, "k", "second", 0))

	var got string
	_, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestGetOrFetch(t *testing.T) {
	c, clock := setupCache(t)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := GetOrFetch(ctx, c, "answer", time.Minute, fetch)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 1, calls, "fetch should run once while cached")

	clock.advance(2 * time.Minute)
	_, err := GetOrFetch(ctx, c, "answer", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "fetch should run again after expiry")
}

func TestGetOrFetchDoesNotCacheErrors(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	boom := errors.New("boom")
	_, err := GetOrFetch(ctx, c, "x", time.Minute, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	ok, err := c.Get(ctx, PrefixTTL+"x", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClearByPrefix(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, PrefixTTL+"a", 1, 0))
	require.NoError(t, c.Set(ctx, PrefixTTL+"b", 1, 0))
	require.NoError(t, c.SetFlag(ctx, KeyPromoSeen))

	n, err := c.Clear(ctx, PrefixTTL)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	seen, err := c.HasFlag(ctx, KeyPromoSeen)
	require.NoError(t, err)
	assert.True(t, seen, "flags outside the prefix survive")
}

func TestBadgerStoreOnDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := OpenBadger(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	require.NoError(t, store.Close())

	store, err = OpenBadger(dir)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

// readOnlyStore rejects every write.
type readOnlyStore struct {
	*BadgerStore
}

func (readOnlyStore) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestGetOrFetchSurvivesWriteFailure(t *testing.T) {
	inner, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { inner.Close() })
	c := New(readOnlyStore{inner})
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"basic"}, nil
	}

	for i := 0; i < 2; i++ {
		v, err := GetOrFetch(ctx, c, "plans", time.Minute, fetch)
		require.NoError(t, err)
		assert.Equal(t, []string{"basic"}, v)
	}
	assert.Equal(t, 2, calls, "nothing was cached, so each call fetches")
}
