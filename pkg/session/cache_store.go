package session

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/ghkeeper/pkg/cache"
)

// CacheStore adapts a cache.Cache to the Store interface.
// Use cache.NewMemory for a single instance and cache.NewRedis when
// several instances share sessions.
type CacheStore struct {
	cache cache.Cache[Data]
}

var _ Store = (*CacheStore)(nil)

// NewCacheStore wraps c.
func NewCacheStore(c cache.Cache[Data]) *CacheStore {
	return &CacheStore{cache: c}
}

func (s *CacheStore) Put(ctx context.Context, id string, data Data, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := s.cache.Set(ctx, id, data, ttl); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func (s *CacheStore) Get(ctx context.Context, id string) (Data, error) {
	data, err := s.cache.Get(ctx, id)
	if errors.Is(err, cache.ErrNotFound) {
		return Data{}, ErrNotFound
	}
	if err != nil {
		return Data{}, errors.Join(ErrStore, err)
	}
	return data, nil
}

func (s *CacheStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, id); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// Close releases the underlying cache.
func (s *CacheStore) Close() error {
	return s.cache.Close()
}
