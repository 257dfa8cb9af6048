package cookie

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/awnumar/memguard"
)

// Separator splits the value from its digest in an encoded cookie.
const Separator = "."

// MinSecretLength is the minimum accepted signing secret length in bytes.
const MinSecretLength = 32

// Signer produces and verifies tamper-evident cookie values of the form
// value + "." + hex(HMAC-SHA256(secret, value)).
//
// The secret lives in a frozen memguard buffer for the lifetime of the
// Signer. Call Close on shutdown to wipe it; a closed Signer fails every
// Encode and Decode. A Signer is safe for concurrent use.
type Signer struct {
	key *memguard.LockedBuffer
}

// NewSigner creates a Signer for the given secret.
// Returns ErrNoSecret for an empty secret and ErrBadSecret if the secret is
// shorter than MinSecretLength. There is no default key.
func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if len(secret) < MinSecretLength {
		return nil, ErrBadSecret
	}
	// NewBufferFromBytes wipes the slice it is given.
	key := memguard.NewBufferFromBytes([]byte(secret))
	key.Freeze()
	return &Signer{key: key}, nil
}

// Close wipes the secret. It has the shape of a shutdown hook.
func (s *Signer) Close(context.Context) error {
	s.key.Destroy()
	return nil
}

// Encode returns value with its digest appended.
func (s *Signer) Encode(value string) (string, error) {
	digest, err := s.digest(value)
	if err != nil {
		return "", err
	}
	return value + Separator + digest, nil
}

// Decode verifies an encoded value and returns the embedded value.
// Any malformed or forged input yields ("", false).
func (s *Signer) Decode(encoded string) (string, bool) {
	value, digest, found := strings.Cut(encoded, Separator)
	if !found || value == "" || digest == "" {
		return "", false
	}

	expected, err := s.digest(value)
	if err != nil {
		return "", false
	}
	if !hmac.Equal([]byte(digest), []byte(expected)) {
		return "", false
	}
	return value, true
}

func (s *Signer) digest(value string) (string, error) {
	if !s.key.IsAlive() {
		return "", ErrNoSecret
	}

	mac := hmac.New(sha256.New, s.key.Bytes())
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil)), nil
}
