package memory

import (
	"context"
	"sync/atomic"

	"github.com/habitboard/core/internal/infrastructure/storage"
)

// Spy wraps a store and counts calls. Tests use it to assert that rejected
// requests never reach the data layer.
type Spy struct {
	Inner storage.Store

	calls atomic.Int64
}

// NewSpy wraps inner with call counting.
func NewSpy(inner storage.Store) *Spy {
	return &Spy{Inner: inner}
}

// Calls reports the number of store operations issued so far.
func (s *Spy) Calls() int64 {
	return s.calls.Load()
}

func (s *Spy) Get(ctx context.Context, key storage.Key) ([]byte, error) {
	s.calls.Add(1)
	return s.Inner.Get(ctx, key)
}

func (s *Spy) Put(ctx context.Context, key storage.Key, value []byte) error {
	s.calls.Add(1)
	return s.Inner.Put(ctx, key, value)
}

func (s *Spy) Delete(ctx context.Context, key storage.Key) error {
	s.calls.Add(1)
	return s.Inner.Delete(ctx, key)
}

func (s *Spy) Scan(ctx context.Context, prefix storage.Key, fn storage.ScanFunc) error {
	s.calls.Add(1)
	return s.Inner.Scan(ctx, prefix, fn)
}

func (s *Spy) Ping(ctx context.Context) error {
	return s.Inner.Ping(ctx)
}

func (s *Spy) Close() error {
	return s.Inner.Close()
}
