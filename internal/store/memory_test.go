package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryBackendPutAndGet(t *testing.T) {
	m := NewMemoryBackend()
	ctx := context.Background()

	if err := m.Put(ctx, "a", []byte("1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := m.Get(ctx, "a")
	if err != nil || string(got) != "1" {
		t.Fatalf("expected value 1, got %q err %v", got, err)
	}
}

func TestMemoryBackendGetNotFound(t *testing.T) {
	m := NewMemoryBackend()
	if _, err := m.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryBackendReturnsCopy(t *testing.T) {
	m := NewMemoryBackend()
	ctx := context.Background()
	_ = m.Put(ctx, "k", []byte("original"))

	got, _ := m.Get(ctx, "k")
	got[0] = 'X'

	again, _ := m.Get(ctx, "k")
	if string(again) != "original" {
		t.Fatalf("expected stored value to remain unchanged, got %q", again)
	}
}

func TestWithPrefixNamespacesKeys(t *testing.T) {
	m := NewMemoryBackend()
	b := WithPrefix(m, "/shl/")
	ctx := context.Background()

	if err := b.Put(ctx, "users", []byte("[]")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := m.Get(ctx, "shl/users"); err != nil {
		t.Fatalf("expected prefixed key, got %v (keys %v)", err, m.Keys())
	}
	if WithPrefix(m, "") != Backend(m) {
		t.Fatalf("expected empty prefix to return backend unchanged")
	}
}
