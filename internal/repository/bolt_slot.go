package repository

import (
	"bytes"
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"refdataservice/internal/refdata"
)

const refdataBucket = "refdata"

var _ refdata.Slot = (*BoltSlot)(nil)

// BoltSlot keeps the payload in a bolt file, one key in the refdata bucket.
type BoltSlot struct {
	db  *bolt.DB
	key []byte
}

// NewBoltSlot opens (or creates) the bolt file at path.
func NewBoltSlot(path, key string) (*BoltSlot, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, uErr := tx.CreateBucketIfNotExists([]byte(refdataBucket))
		return uErr
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket %s: %w", refdataBucket, err)
	}
	return &BoltSlot{db: db, key: []byte(key)}, nil
}

// Load reads the payload. Bolt values are only valid inside the transaction, so it is copied.
func (s *BoltSlot) Load(_ context.Context) ([]byte, bool, error) {
	var payload []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(refdataBucket)).Get(s.key)
		if v != nil {
			payload = bytes.Clone(v)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return payload, payload != nil, nil
}

// Save writes the payload in a single transaction.
func (s *BoltSlot) Save(_ context.Context, payload []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(refdataBucket)).Put(s.key, payload)
	})
}

// Close releases the bolt file lock.
func (s *BoltSlot) Close() error {
	return s.db.Close()
}
