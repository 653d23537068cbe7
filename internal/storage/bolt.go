package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	boltDirPerm     = fs.FileMode(0o700)
	boltFilePerm    = fs.FileMode(0o600)
	boltOpenTimeout = 5 * time.Second
)

var secureBucket = []byte("secure_storage")

// BoltStorage implements [SecureStorage] on a single bbolt bucket.
type BoltStorage struct {
	db *bolt.DB
}

// OpenBolt opens (creating if needed) the bbolt file at path.
func OpenBolt(path string) (*BoltStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), boltDirPerm); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	db, err := bolt.Open(path, boltFilePerm, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening storage db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(secureBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing storage db: %w", err)
	}

	return &BoltStorage{db: db}, nil
}

// Get returns the value for key, or "".
func (s *BoltStorage) Get(key string) (string, error) {
	var value string

	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(secureBucket).Get([]byte(key)); v != nil {
			value = string(v)
		}
		return nil
	})

	return value, err
}

// Set persists value under key.
func (s *BoltStorage) Set(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(secureBucket).Put([]byte(key), []byte(value))
	})
}

// Remove deletes key.
func (s *BoltStorage) Remove(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(secureBucket).Delete([]byte(key))
	})
}

// Close closes the database.
func (s *BoltStorage) Close() error {
	return s.db.Close()
}
