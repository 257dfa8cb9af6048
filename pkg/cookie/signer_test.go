package cookie_test

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ghkeeper/pkg/cookie"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

func newSigner(t *testing.T, secret string) *cookie.Signer {
	t.Helper()
	s, err := cookie.NewSigner(secret)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestNewSigner(t *testing.T) {
	t.Parallel()

	t.Run("empty secret", func(t *testing.T) {
		t.Parallel()
		s, err := cookie.NewSigner("")
		require.ErrorIs(t, err, cookie.ErrNoSecret)
		require.Nil(t, s)
	})

	t.Run("short secret", func(t *testing.T) {
		t.Parallel()
		s, err := cookie.NewSigner("too-short")
		require.ErrorIs(t, err, cookie.ErrBadSecret)
		require.Nil(t, s)
	})
}

func TestSigner_RoundTrip(t *testing.T) {
	t.Parallel()

	s := newSigner(t, testSecret)
	for range 50 {
		id := uuid.NewString()
		encoded, err := s.Encode(id)
		require.NoError(t, err)

		got, ok := s.Decode(encoded)
		require.True(t, ok, "decode %q", encoded)
		require.Equal(t, id, got)
	}
}

func TestSigner_Format(t *testing.T) {
	t.Parallel()

	s := newSigner(t, testSecret)
	a, err := s.Encode("abc")
	require.NoError(t, err)
	b, err := s.Encode("abc")
	require.NoError(t, err)

	assert.Equal(t, a, b, "encoding must be deterministic")

	value, digest, found := strings.Cut(a, cookie.Separator)
	require.True(t, found)
	assert.Equal(t, "abc", value)
	assert.Len(t, digest, 64, "hex encoded sha256")
}

func TestSigner_RejectsForgeries(t *testing.T) {
	t.Parallel()

	s := newSigner(t, testSecret)
	id := uuid.NewString()
	valid, err := s.Encode(id)
	require.NoError(t, err)
	_, digest, _ := strings.Cut(valid, cookie.Separator)

	other := newSigner(t, "another-32-byte-or-longer-secret!!")
	foreign, err := other.Encode(id)
	require.NoError(t, err)

	flipped := []byte(valid)
	last := len(flipped) - 1
	if flipped[last] == 'a' {
		flipped[last] = 'b'
	} else {
		flipped[last] = 'a'
	}

	cases := []struct {
		name  string
		value string
	}{
		{name: "empty", value: ""},
		{name: "raw id", value: id},
		{name: "separator only", value: "."},
		{name: "empty id", value: "." + digest},
		{name: "empty digest", value: id + "."},
		{name: "truncated digest", value: valid[:len(valid)-1]},
		{name: "truncated id", value: id[1:] + "." + digest},
		{name: "bit flip", value: string(flipped)},
		{name: "uppercase digest", value: id + "." + strings.ToUpper(digest)},
		{name: "separator moved", value: id[:10] + "." + id[10:] + digest},
		{name: "extra separator", value: valid + ".extra"},
		{name: "swapped halves", value: digest + "." + id},
		{name: "foreign key", value: foreign},
		{name: "garbage", value: "\x00\xff.%%%"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := s.Decode(tc.value)
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

func TestSigner_Concurrent(t *testing.T) {
	t.Parallel()

	s := newSigner(t, testSecret)
	valid, err := s.Encode("shared-session")
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		failures atomic.Int64
	)
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				if got, ok := s.Decode(valid); !ok || got != "shared-session" {
					failures.Add(1)
				}
				if _, ok := s.Decode("forged." + strconv.Itoa(i)); ok {
					failures.Add(1)
				}
				if _, err := s.Encode(uuid.NewString()); err != nil {
					failures.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, failures.Load())
}

func TestSigner_Close(t *testing.T) {
	t.Parallel()

	s := newSigner(t, testSecret)
	valid, err := s.Encode("abc")
	require.NoError(t, err)

	require.NoError(t, s.Close(context.Background()))
	require.NoError(t, s.Close(context.Background()), "closing twice is harmless")

	_, err = s.Encode("abc")
	require.ErrorIs(t, err, cookie.ErrNoSecret)

	got, ok := s.Decode(valid)
	assert.False(t, ok)
	assert.Empty(t, got)
}
