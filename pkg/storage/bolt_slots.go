package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketSlots = []byte("slots")

// BoltSlots keeps blobs in a single bbolt database file
type BoltSlots struct {
	db *bolt.DB
}

// NewBoltSlots opens (or creates) the database at path
func NewBoltSlots(path string) (*BoltSlots, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("bolt database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSlots)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltSlots{db: db}, nil
}

// Get implements Slots
func (b *BoltSlots) Get(_ context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketSlots)
		if bucket == nil {
			return nil
		}
		raw := bucket.Get([]byte(key))
		if raw == nil {
			return nil
		}
		// raw is only valid for the life of the transaction
		data = append([]byte{}, raw...)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, data != nil, nil
}

// Set implements Slots
func (b *BoltSlots) Set(_ context.Context, key string, data []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketSlots)
		if err != nil {
			return err
		}
		if data == nil {
			data = []byte{}
		}
		return bucket.Put([]byte(key), data)
	})
}

// Close implements Slots
func (b *BoltSlots) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
