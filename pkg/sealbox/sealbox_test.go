package sealbox_test

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/nacl/box"

	"github.com/dmitrymomot/ghkeeper/pkg/sealbox"
)

func keyPair(t *testing.T) (pub, priv *[32]byte, pubB64 string) {
	t.Helper()
	pub, priv, err := box.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return pub, priv, base64.StdEncoding.EncodeToString(pub[:])
}

func TestSeal_RoundTrip(t *testing.T) {
	t.Parallel()

	pub, priv, pubB64 := keyPair(t)

	for _, plaintext := range []string{"", "s3cr3t", "multi\nline\nvalue", string(make([]byte, 4096))} {
		sealed, err := sealbox.Seal(pubB64, []byte(plaintext))
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(sealed)
		require.NoError(t, err)
		require.Len(t, raw, len(plaintext)+box.AnonymousOverhead)

		opened, ok := box.OpenAnonymous(nil, raw, pub, priv)
		require.True(t, ok)
		assert.Equal(t, plaintext, string(opened))
	}
}

func TestSeal_NonDeterministic(t *testing.T) {
	t.Parallel()

	_, _, pubB64 := keyPair(t)

	a, err := sealbox.Seal(pubB64, []byte("value"))
	require.NoError(t, err)
	b, err := sealbox.Seal(pubB64, []byte("value"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSeal_WrongKeyCannotOpen(t *testing.T) {
	t.Parallel()

	_, _, pubB64 := keyPair(t)
	otherPub, otherPriv, _ := keyPair(t)

	sealed, err := sealbox.Seal(pubB64, []byte("value"))
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)

	_, ok := box.OpenAnonymous(nil, raw, otherPub, otherPriv)
	assert.False(t, ok)
}

func TestSeal_InvalidKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
	}{
		{name: "empty", key: ""},
		{name: "not base64", key: "!!!not-base64!!!"},
		{name: "url-safe alphabet", key: "-_-_-_-_-_-_-_-_-_-_-_-_-_-_-_-_-_-_-_-_-_-="},
		{name: "short", key: base64.StdEncoding.EncodeToString(make([]byte, 31))},
		{name: "long", key: base64.StdEncoding.EncodeToString(make([]byte, 33))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sealed, err := sealbox.Seal(tt.key, []byte("value"))
			require.ErrorIs(t, err, sealbox.ErrInvalidPublicKey)
			assert.Empty(t, sealed)
		})
	}
}
