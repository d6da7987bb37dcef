// Package store persists the service's documents (schedule, standings, snapshots, event logs,
// users) in a key-value backend and keeps a decoded-on-read cache of the last value seen.
package store

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by a Backend when no value is stored under a key.
var ErrNotFound = errors.New("store: key not found")

// Backend is a byte-oriented key-value store. Keys are slash separated, e.g. "events/<uuid>".
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

type prefixed struct {
	inner  Backend
	prefix string
}

// WithPrefix namespaces every key of b under prefix.
func WithPrefix(b Backend, prefix string) Backend {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return b
	}
	return &prefixed{inner: b, prefix: prefix + "/"}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Put(ctx context.Context, key string, value []byte) error {
	return p.inner.Put(ctx, p.prefix+key, value)
}
