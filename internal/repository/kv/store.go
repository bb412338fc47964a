// Package kv implements the record repositories over a local bbolt
// key-value store. Each collection lives under a single fixed key whose
// value is the JSON-encoded array of records, and every mutation rewrites
// the whole collection. That mirrors the platform's original persistence
// contract and is acceptable for a single-writer deployment; the postgres
// package is the multi-writer alternative.
package kv

import (
	"fmt"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Fixed, namespaced keys - one per collection plus the session slot.
const (
	keyProblems  = "janmanch-problems"
	keySolutions = "janmanch-solutions"
	keyComments  = "janmanch-comments"
	keySession   = "janmanch-session"
)

var bucketName = []byte("janmanch")

// Store owns the bbolt database handle shared by the repositories.
type Store struct {
	db     *bolt.DB
	logger *slog.Logger
}

// Open opens (creating if necessary) the store file and ensures the
// collections bucket exists.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// get returns the raw value stored under key, or nil when absent.
func (s *Store) get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketName).Get([]byte(key))
		if raw != nil {
			// The slice is only valid inside the transaction.
			value = make([]byte, len(raw))
			copy(value, raw)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return value, nil
}

// put replaces the value stored under key in a single write transaction.
func (s *Store) put(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// delete removes the value stored under key. Deleting an absent key is
// not an error.
func (s *Store) delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
