// internal/adapters/out/kv/bolt_store.go
package kv

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"greencart/internal/application/store"
	"greencart/internal/infra/kvstore"
)

// BoltProvider partitions a bbolt file into one bucket per profile.
// This is the local analogue of per-browser-profile web storage:
// synchronous, file-scoped, string keyed.
type BoltProvider struct {
	db *kvstore.DB
}

func NewBoltProvider(db *kvstore.DB) *BoltProvider {
	return &BoltProvider{db: db}
}

func (p *BoltProvider) ForProfile(profileID string) store.Store {
	return &BoltStore{db: p.db, bucket: []byte(profileID)}
}

// BoltStore implements store.Store over one bucket.
type BoltStore struct {
	db     *kvstore.DB
	bucket []byte
}

func (s *BoltStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if s == nil || s.db == nil || s.db.Bolt == nil {
		return nil, false, fmt.Errorf("bolt_store: db is nil")
	}

	var out []byte
	found := false
	err := s.db.Bolt.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return nil
		}
		raw := bucket.Get([]byte(key))
		if raw == nil {
			return nil
		}
		found = true
		out = make([]byte, len(raw))
		copy(out, raw)
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("bolt_store: get %q: %w", key, err)
	}
	return out, found, nil
}

func (s *BoltStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil || s.db.Bolt == nil {
		return fmt.Errorf("bolt_store: db is nil")
	}

	return s.db.Bolt.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(s.bucket)
		if err != nil {
			return fmt.Errorf("bolt_store: bucket %q: %w", string(s.bucket), err)
		}
		return bucket.Put([]byte(key), value)
	})
}

func (s *BoltStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil || s.db.Bolt == nil {
		return fmt.Errorf("bolt_store: db is nil")
	}

	return s.db.Bolt.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	})
}
