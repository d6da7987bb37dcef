package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Doc is a single JSON document of type T persisted under one key.
//
// Read and Write go to the backend and refresh the in-process cache. ReadCached never
// touches the backend; it decodes the cached bytes on each call so callers always receive
// a value they are free to mutate.
type Doc[T any] struct {
	backend Backend
	key     string
	empty   func() T

	mu     sync.RWMutex
	cached []byte
}

// NewDoc builds a document bound to key. empty supplies the value returned when nothing is
// stored yet; a nil empty yields T's zero value.
func NewDoc[T any](backend Backend, key string, empty func() T) *Doc[T] {
	if empty == nil {
		empty = func() T {
			var zero T
			return zero
		}
	}
	return &Doc[T]{backend: backend, key: key, empty: empty}
}

// Key returns the backend key of the document.
func (d *Doc[T]) Key() string {
	return d.key
}

// Read loads the document from the backend. A missing document reads as the empty value.
func (d *Doc[T]) Read(ctx context.Context) (T, error) {
	data, err := d.backend.Get(ctx, d.key)
	if errors.Is(err, ErrNotFound) {
		return d.empty(), nil
	}
	if err != nil {
		return d.empty(), fmt.Errorf("read %s: %w", d.key, err)
	}
	v := d.empty()
	if err := json.Unmarshal(data, &v); err != nil {
		return d.empty(), fmt.Errorf("decode %s: %w", d.key, err)
	}
	d.remember(data)
	return v, nil
}

// Write persists v and caches it.
func (d *Doc[T]) Write(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.key, err)
	}
	if err := d.backend.Put(ctx, d.key, data); err != nil {
		return fmt.Errorf("write %s: %w", d.key, err)
	}
	d.remember(data)
	return nil
}

// ReadCached returns the last value read or written, or the empty value.
func (d *Doc[T]) ReadCached() T {
	d.mu.RLock()
	data := d.cached
	d.mu.RUnlock()

	v := d.empty()
	if data == nil {
		return v
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return d.empty()
	}
	return v
}

// Cached reports whether a value has been read or written through this document.
func (d *Doc[T]) Cached() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cached != nil
}

func (d *Doc[T]) remember(data []byte) {
	d.mu.Lock()
	d.cached = data
	d.mu.Unlock()
}

// Collection hands out one Doc per id under a shared key prefix, e.g. one event log per game.
type Collection[T any] struct {
	backend Backend
	prefix  string
	empty   func() T

	mu   sync.Mutex
	docs map[string]*Doc[T]
}

// NewCollection builds a collection whose documents live at prefix/<id>.
func NewCollection[T any](backend Backend, prefix string, empty func() T) *Collection[T] {
	return &Collection[T]{
		backend: backend,
		prefix:  prefix,
		empty:   empty,
		docs:    make(map[string]*Doc[T]),
	}
}

// Doc returns the document for id, creating it on first use.
func (c *Collection[T]) Doc(id string) *Doc[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d, ok := c.docs[id]; ok {
		return d
	}
	d := NewDoc(c.backend, c.prefix+"/"+id, c.empty)
	c.docs[id] = d
	return d
}
