package oauth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// StateBytes is the entropy of a state nonce.
const StateBytes = 16

// NewState returns a random hex nonce for the OAuth state parameter.
func NewState() (string, error) {
	b := make([]byte, StateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrStateGeneration, err)
	}
	return hex.EncodeToString(b), nil
}

// StateMatches compares the stored and returned state in constant time.
// Empty values never match.
func StateMatches(stored, returned string) bool {
	if stored == "" || returned == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(returned)) == 1
}
