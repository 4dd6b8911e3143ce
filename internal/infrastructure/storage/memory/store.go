// Package memory provides an in-memory storage backend. It backs tests and
// throwaway development runs; nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/habitboard/core/internal/infrastructure/storage"
)

// Store is an ordered in-memory key-value store.
type Store struct {
	mu     sync.RWMutex
	keys   []string
	values map[string][]byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

// Get fetches the value stored at key.
func (s *Store) Get(ctx context.Context, key storage.Key) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key.String()]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Put stores value at key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key storage.Key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key.String()
	if _, ok := s.values[k]; !ok {
		i := sort.SearchStrings(s.keys, k)
		s.keys = append(s.keys, "")
		copy(s.keys[i+1:], s.keys[i:])
		s.keys[i] = k
	}
	s.values[k] = append([]byte(nil), value...)
	return nil
}

// Delete removes the entry at key.
func (s *Store) Delete(ctx context.Context, key storage.Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := key.String()
	if _, ok := s.values[k]; !ok {
		return nil
	}
	delete(s.values, k)
	i := sort.SearchStrings(s.keys, k)
	s.keys = append(s.keys[:i], s.keys[i+1:]...)
	return nil
}

// Scan visits every entry whose key starts with prefix, in key order.
func (s *Store) Scan(ctx context.Context, prefix storage.Key, fn storage.ScanFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Snapshot under the lock so fn can issue store calls of its own.
	s.mu.RLock()
	p := prefix.Prefix()
	var snapshot []string
	for _, k := range s.keys {
		if strings.HasPrefix(k, p) {
			snapshot = append(snapshot, k)
		}
	}
	values := make(map[string][]byte, len(snapshot))
	for _, k := range snapshot {
		values[k] = append([]byte(nil), s.values[k]...)
	}
	s.mu.RUnlock()

	for _, k := range snapshot {
		if err := fn(storage.ParseKey(k), values[k]); err != nil {
			if err == storage.ErrStopScan {
				return nil
			}
			return err
		}
	}
	return nil
}

// Ping reports whether the store is reachable. Always nil.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close releases the store. Always nil.
func (s *Store) Close() error {
	return nil
}
