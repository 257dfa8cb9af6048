package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var sessionsBucket = []byte("sessions")

type boltRecord struct {
	Data      Data      `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BoltStore keeps sessions in a single bbolt bucket.
// Suitable for single-instance deployments that must survive restarts.
type BoltStore struct {
	db  *bbolt.DB
	now func() time.Time
}

var _ Store = (*BoltStore)(nil)

// NewBoltStore returns a store over db, creating the bucket if needed.
func NewBoltStore(db *bbolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	return &BoltStore{db: db, now: time.Now}, nil
}

// OpenBoltStore opens the bbolt file at path and returns a store over it.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Join(ErrStore, fmt.Errorf("opening bbolt db: %w", err))
	}
	s, err := NewBoltStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *BoltStore) Put(_ context.Context, id string, data Data, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	raw, err := json.Marshal(boltRecord{Data: data, ExpiresAt: s.now().Add(ttl)})
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put([]byte(id), raw)
	})
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func (s *BoltStore) Get(_ context.Context, id string) (Data, error) {
	var rec boltRecord
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(sessionsBucket).Get([]byte(id))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &rec)
	})
	if err != nil {
		return Data{}, errors.Join(ErrStore, err)
	}
	if !found || !s.now().Before(rec.ExpiresAt) {
		return Data{}, ErrNotFound
	}
	return rec.Data, nil
}

func (s *BoltStore) Delete(_ context.Context, id string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionsBucket).Delete([]byte(id))
	})
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// DeleteExpired sweeps entries past their expiry.
func (s *BoltStore) DeleteExpired(context.Context) (int64, error) {
	now := s.now()
	var n int64
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var rec boltRecord
			if err := json.Unmarshal(v, &rec); err != nil || !now.Before(rec.ExpiresAt) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, errors.Join(ErrStore, err)
	}
	return n, nil
}

// Close closes the bbolt database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
