package session

import (
	"context"
	"time"
)

// Store persists session data keyed by session id.
// Expiry is enforced by the store: Get never returns an entry older than its TTL.
type Store interface {
	// Put stores data under id for ttl.
	Put(ctx context.Context, id string, data Data, ttl time.Duration) error

	// Get returns the data for id.
	// Returns ErrNotFound if the entry is missing or expired.
	Get(ctx context.Context, id string) (Data, error)

	// Delete removes id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}
