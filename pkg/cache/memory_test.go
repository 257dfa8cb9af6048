package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ghkeeper/pkg/cache"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		defer c.Close()

		_, err := c.Get(ctx, "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("stored value", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[int](cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "k", 42, time.Minute))
		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("overwrite", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "k", "a", time.Minute))
		require.NoError(t, c.Set(ctx, "k", "b", time.Minute))
		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "b", v)
	})
}

func TestMemory_TTLBoundary(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	c := cache.NewMemory[string](cache.WithClock(clock.Now), cache.WithCleanupInterval(0))
	defer c.Close()

	require.NoError(t, c.Set(ctx, "k", "v", 24*time.Hour))

	clock.Advance(24*time.Hour - time.Millisecond)
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	clock.Advance(2 * time.Millisecond)
	_, err = c.Get(ctx, "k")
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestMemory_DefaultAndNegativeTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	c := cache.NewMemory[string](
		cache.WithClock(clock.Now),
		cache.WithDefaultTTL(time.Minute),
		cache.WithCleanupInterval(0),
	)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "default", "v", 0))
	require.NoError(t, c.Set(ctx, "forever", "v", -1))

	clock.Advance(time.Hour)

	_, err := c.Get(ctx, "default")
	require.ErrorIs(t, err, cache.ErrNotFound)

	_, err = c.Get(ctx, "forever")
	require.NoError(t, err)
}

func TestMemory_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemory[string](cache.WithCleanupInterval(0))
	defer c.Close()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))
	require.NoError(t, c.Delete(ctx, "k"), "deleting a missing key is not an error")

	_, err := c.Get(ctx, "k")
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestMemory_Close(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemory[string]()

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "close is idempotent")

	require.ErrorIs(t, c.Set(ctx, "k", "v", time.Minute), cache.ErrClosed)
	require.ErrorIs(t, c.Delete(ctx, "k"), cache.ErrClosed)
	_, err := c.Get(ctx, "k")
	require.ErrorIs(t, err, cache.ErrClosed)
}

func TestMemory_Janitor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemory[string](cache.WithCleanupInterval(10 * time.Millisecond))
	defer c.Close()

	require.NoError(t, c.Set(ctx, "short", "v", 5*time.Millisecond))
	require.NoError(t, c.Set(ctx, "long", "v", time.Hour))

	require.Eventually(t, func() bool {
		return c.Len() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemory[int](cache.WithCleanupInterval(time.Millisecond))
	defer c.Close()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n))
			for range 100 {
				_ = c.Set(ctx, key, n, time.Second)
				_, _ = c.Get(ctx, key)
				_ = c.Delete(ctx, key)
			}
		}(i)
	}
	wg.Wait()
}
