// Package bbolt provides the default BoltDB-backed storage backend.
package bbolt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/habitboard/core/internal/infrastructure/storage"
)

const kvBucket = "kv"

// Store is a BoltDB-backed ordered key-value store. Writes are serialized
// by the underlying database; prefix scans use B+tree cursor seeks.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBucket(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Get fetches the value stored at key.
func (s *Store) Get(ctx context.Context, key storage.Key) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(kvBucket))
		if bucket == nil {
			return fmt.Errorf("kv bucket is missing")
		}
		raw := bucket.Get([]byte(key.String()))
		if raw == nil {
			return storage.ErrNotFound
		}
		value = append([]byte(nil), raw...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Put stores value at key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key storage.Key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(kvBucket))
		if bucket == nil {
			return fmt.Errorf("kv bucket is missing")
		}
		return bucket.Put([]byte(key.String()), value)
	})
}

// Delete removes the entry at key.
func (s *Store) Delete(ctx context.Context, key storage.Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(kvBucket))
		if bucket == nil {
			return fmt.Errorf("kv bucket is missing")
		}
		return bucket.Delete([]byte(key.String()))
	})
}

// Scan visits every entry whose key starts with prefix, in key order.
func (s *Store) Scan(ctx context.Context, prefix storage.Key, fn storage.ScanFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(kvBucket))
		if bucket == nil {
			return fmt.Errorf("kv bucket is missing")
		}

		cursor := bucket.Cursor()
		p := []byte(prefix.Prefix())
		for k, v := cursor.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = cursor.Next() {
			// Copies escape the transaction; bbolt memory is only
			// valid inside it.
			key := storage.ParseKey(string(k))
			value := append([]byte(nil), v...)
			if err := fn(key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, storage.ErrStopScan) {
		return nil
	}
	return err
}

// Ping reports whether the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureBucket() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(kvBucket))
		if err != nil {
			return fmt.Errorf("create kv bucket: %w", err)
		}
		return nil
	})
}
