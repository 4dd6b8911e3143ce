// Package storage defines the ordered key-value store contract that all
// durable state goes through. Keys are composite tuples of string segments;
// scans visit entries in lexicographic key order and may be restarted at any
// time by issuing a fresh call.
package storage

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned by Get when no entry exists for the key.
	ErrNotFound = errors.New("storage: key not found")

	// ErrStopScan can be returned from a ScanFunc to end a scan early.
	// Scan swallows it and returns nil.
	ErrStopScan = errors.New("storage: stop scan")
)

// Key is a composite key path, e.g. {"board", ownerID, boardID}. Segments
// must not contain '/'; entity IDs are UUIDs, dates are YYYY-MM-DD and
// usernames are validated to an alphanumeric alphabet, so this holds by
// construction.
type Key []string

// String encodes the key as its stored byte form.
func (k Key) String() string {
	return strings.Join(k, "/")
}

// Prefix encodes the key as a scan prefix. The trailing separator keeps a
// prefix like {"board"} from matching sibling kinds that merely share the
// leading bytes.
func (k Key) Prefix() string {
	if len(k) == 0 {
		return ""
	}
	return k.String() + "/"
}

// ParseKey decodes a stored key back into its segments.
func ParseKey(s string) Key {
	if s == "" {
		return nil
	}
	return Key(strings.Split(s, "/"))
}

// ScanFunc receives each entry visited by Scan. Returning an error aborts
// the scan; returning ErrStopScan aborts it without surfacing an error.
type ScanFunc func(key Key, value []byte) error

// Store is an ordered, prefix-scannable key-value store. Implementations
// guarantee atomicity per single key only; callers must not rely on
// multi-key atomicity.
type Store interface {
	// Get fetches the value stored at key, or ErrNotFound.
	Get(ctx context.Context, key Key) ([]byte, error)

	// Put stores value at key, replacing any previous value.
	Put(ctx context.Context, key Key, value []byte) error

	// Delete removes the entry at key. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key Key) error

	// Scan visits every entry whose key starts with prefix, in
	// lexicographic key order.
	Scan(ctx context.Context, prefix Key, fn ScanFunc) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying resources.
	Close() error
}
