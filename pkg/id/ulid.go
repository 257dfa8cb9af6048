// Package id generates the identifiers used by the service:
// ULIDs for request correlation and random UUIDs for session keys.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	"github.com/google/uuid"
)

// Crockford's Base32 alphabet (no I, L, O, U).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// ULIDLength is the length of an encoded ULID.
const ULIDLength = 26

// NewULID returns a 26-character ULID: 48-bit millisecond timestamp followed
// by 80 random bits, Crockford base32 encoded. ULIDs sort by creation time.
func NewULID() string {
	return newULID(time.Now())
}

func newULID(now time.Time) string {
	// 16 bytes: 6 timestamp + 10 entropy, encoded as one 128-bit number.
	var raw [16]byte
	ms := uint64(now.UnixMilli())
	raw[0] = byte(ms >> 40)
	raw[1] = byte(ms >> 32)
	raw[2] = byte(ms >> 24)
	raw[3] = byte(ms >> 16)
	raw[4] = byte(ms >> 8)
	raw[5] = byte(ms)
	if _, err := rand.Read(raw[6:]); err != nil {
		binary.BigEndian.PutUint64(raw[8:], uint64(now.UnixNano()))
	}

	hi := binary.BigEndian.Uint64(raw[:8])
	lo := binary.BigEndian.Uint64(raw[8:])

	// 26 chars * 5 bits = 130 bits; the first char carries the top 3 bits.
	var out [ULIDLength]byte
	for i := ULIDLength - 1; i >= 0; i-- {
		out[i] = crockfordBase32[lo&0x1F]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}

// NewSessionID returns a random (version 4) UUID used as a session store key.
func NewSessionID() string {
	return uuid.NewString()
}
