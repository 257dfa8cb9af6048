// Package sealbox encrypts values for GitHub Actions secrets.
//
// GitHub publishes a Curve25519 public key per repository. Values are sealed
// with an anonymous NaCl box so that only the holder of the private key
// (GitHub) can open them:
//
//	key, _ := gh.GetSecretsPublicKey(ctx, token, owner, repo)
//	sealed, err := sealbox.Seal(key.Key, []byte(value))
//
// Sealing is non-deterministic: an ephemeral key pair is generated per call.
package sealbox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/box"
)

// KeySize is the length of a Curve25519 public key.
const KeySize = 32

var (
	// ErrInvalidPublicKey is returned when the key is not base64 or not 32 bytes.
	ErrInvalidPublicKey = errors.New("sealbox: invalid public key")

	// ErrSealFailed is returned when the random source fails.
	ErrSealFailed = errors.New("sealbox: seal failed")
)

// Seal encrypts plaintext for the holder of publicKey (standard base64) and
// returns the standard base64 encoding of the sealed box.
func Seal(publicKey string, plaintext []byte) (string, error) {
	pk, err := decodeKey(publicKey)
	if err != nil {
		return "", err
	}

	sealed, err := box.SealAnonymous(nil, plaintext, pk, rand.Reader)
	if err != nil {
		return "", errors.Join(ErrSealFailed, err)
	}

	return base64.StdEncoding.EncodeToString(sealed), nil
}

func decodeKey(publicKey string) (*[KeySize]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(publicKey)
	if err != nil {
		return nil, errors.Join(ErrInvalidPublicKey, err)
	}
	if len(raw) != KeySize {
		return nil, errors.Join(ErrInvalidPublicKey, fmt.Errorf("got %d bytes, want %d", len(raw), KeySize))
	}

	var pk [KeySize]byte
	copy(pk[:], raw)
	return &pk, nil
}
