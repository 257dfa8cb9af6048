package session

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExpirer struct {
	calls atomic.Int32
	n     int64
	err   error
}

func (e *countingExpirer) DeleteExpired(context.Context) (int64, error) {
	e.calls.Add(1)
	return e.n, e.err
}

func TestNewSweeper_InvalidSchedule(t *testing.T) {
	t.Parallel()

	_, err := NewSweeper(&countingExpirer{}, "every tuesday", nil)
	require.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestSweeper_Sweep(t *testing.T) {
	t.Parallel()

	t.Run("reports removed count", func(t *testing.T) {
		t.Parallel()
		exp := &countingExpirer{n: 3}
		sw, err := NewSweeper(exp, DefaultSweepSchedule, nil)
		require.NoError(t, err)

		n, err := sw.Sweep(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.Equal(t, int32(1), exp.calls.Load())
	})

	t.Run("propagates store failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		sw, err := NewSweeper(&countingExpirer{err: boom}, "@hourly", nil)
		require.NoError(t, err)

		_, err = sw.Sweep(context.Background())
		require.ErrorIs(t, err, boom)
	})
}

func TestSweeper_RunsOnSchedule(t *testing.T) {
	t.Parallel()

	exp := &countingExpirer{}
	sw, err := NewSweeper(exp, "@every 1s", nil)
	require.NoError(t, err)

	require.NoError(t, sw.Start(context.Background()))
	assert.Eventually(t, func() bool { return exp.calls.Load() > 0 }, 5*time.Second, 50*time.Millisecond)
	require.NoError(t, sw.Stop(context.Background()))
}

func TestSweeper_BoltStore(t *testing.T) {
	t.Parallel()

	store, err := OpenBoltStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	c := newClock()
	store.now = c.Now

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "short", Data{Token: "a"}, time.Minute))
	require.NoError(t, store.Put(ctx, "long", Data{Token: "b"}, time.Hour))
	c.Advance(2 * time.Minute)

	sw, err := NewSweeper(store, DefaultSweepSchedule, nil)
	require.NoError(t, err)

	n, err := sw.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Get(ctx, "long")
	require.NoError(t, err)
}
