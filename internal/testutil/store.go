package testutil

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/preston-bernstein/shl-live-service/internal/store"
)

// ErrStoreDown is returned by FailingBackend while it is failing.
var ErrStoreDown = errors.New("store down")

// FailingBackend wraps a memory backend and fails writes while Fail is set and reads while
// FailReads is set.
type FailingBackend struct {
	*store.MemoryBackend
	Fail      atomic.Bool
	FailReads atomic.Bool
}

// NewFailingBackend returns a backend that starts out healthy.
func NewFailingBackend() *FailingBackend {
	return &FailingBackend{MemoryBackend: store.NewMemoryBackend()}
}

func (f *FailingBackend) Put(ctx context.Context, key string, value []byte) error {
	if f.Fail.Load() {
		return ErrStoreDown
	}
	return f.MemoryBackend.Put(ctx, key, value)
}

func (f *FailingBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if f.FailReads.Load() {
		return nil, ErrStoreDown
	}
	return f.MemoryBackend.Get(ctx, key)
}
