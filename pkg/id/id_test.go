package id

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULID_Format(t *testing.T) {
	t.Parallel()

	for range 100 {
		u := NewULID()
		require.Len(t, u, ULIDLength)
		for _, c := range u {
			require.True(t, strings.ContainsRune(crockfordBase32, c), "unexpected char %q in %s", c, u)
		}
	}
}

func TestNewULID_KnownTimestamp(t *testing.T) {
	t.Parallel()

	// 1469918176385 ms is the timestamp of the reference ULID 01ARYZ6S41...
	u := newULID(time.UnixMilli(1469918176385))
	assert.Equal(t, "01ARYZ6S41", u[:10])
}

func TestNewULID_SortsByTime(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ids := make([]string, 0, 50)
	for i := range 50 {
		ids = append(ids, newULID(base.Add(time.Duration(i)*time.Millisecond)))
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestNewULID_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		u := NewULID()
		_, dup := seen[u]
		require.False(t, dup)
		seen[u] = struct{}{}
	}
}

func TestNewSessionID(t *testing.T) {
	t.Parallel()

	a, b := NewSessionID(), NewSessionID()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}
