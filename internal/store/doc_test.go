package store

import (
	"context"
	"errors"
	"testing"
)

type failingBackend struct {
	err error
}

func (f failingBackend) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingBackend) Put(context.Context, string, []byte) error  { return f.err }

func TestDocReadMissingReturnsEmpty(t *testing.T) {
	d := NewDoc(NewMemoryBackend(), "users", func() []string { return []string{} })

	v, err := d.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v == nil || len(v) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", v)
	}
	if d.Cached() {
		t.Fatalf("expected nothing cached after reading a missing key")
	}
}

func TestDocWriteThenReadCached(t *testing.T) {
	b := NewMemoryBackend()
	d := NewDoc[[]string](b, "teams", nil)
	ctx := context.Background()

	if err := d.Write(ctx, []string{"LHF", "FBK"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	cached := d.ReadCached()
	if len(cached) != 2 || cached[0] != "LHF" {
		t.Fatalf("unexpected cached value %v", cached)
	}

	cached[0] = "mutated"
	if again := d.ReadCached(); again[0] != "LHF" {
		t.Fatalf("expected cache to be decoded per call, got %v", again)
	}

	fresh := NewDoc[[]string](b, "teams", nil)
	if fresh.Cached() {
		t.Fatalf("expected a new document to start uncached")
	}
	v, err := fresh.Read(ctx)
	if err != nil || len(v) != 2 {
		t.Fatalf("expected persisted value, got %v err %v", v, err)
	}
	if !fresh.Cached() {
		t.Fatalf("expected read to populate cache")
	}
}

func TestDocPropagatesBackendErrors(t *testing.T) {
	boom := errors.New("boom")
	d := NewDoc[int](failingBackend{err: boom}, "n", nil)
	ctx := context.Background()

	if _, err := d.Read(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}
	if err := d.Write(ctx, 1); !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}
	if d.ReadCached() != 0 {
		t.Fatalf("expected failed write to leave cache empty")
	}
}

func TestDocReadRejectsCorruptData(t *testing.T) {
	b := NewMemoryBackend()
	_ = b.Put(context.Background(), "n", []byte("not json"))
	d := NewDoc[int](b, "n", nil)
	if _, err := d.Read(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestCollectionReusesDocs(t *testing.T) {
	b := NewMemoryBackend()
	c := NewCollection[[]int](b, "events", nil)

	first := c.Doc("g1")
	if c.Doc("g1") != first {
		t.Fatalf("expected same document for same id")
	}
	if first.Key() != "events/g1" {
		t.Fatalf("unexpected key %s", first.Key())
	}
	if err := first.Write(context.Background(), []int{1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := b.Get(context.Background(), "events/g1"); err != nil {
		t.Fatalf("expected value under collection key, got %v", err)
	}
}
