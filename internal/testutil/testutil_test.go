package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/store"
)

func TestFixturesHelper(t *testing.T) {
	start := time.Date(2030, 1, 2, 19, 0, 0, 0, time.UTC)
	g := SampleGame("g1", start)
	if g.UUID != "g1" || g.HomeTeam != "LHF" || !g.StartTime.Equal(start) || g.Status != games.StatusComing {
		t.Fatalf("unexpected game fixture %+v", g)
	}
	snap := SampleSnapshot("g1", 2, 1, 0)
	if !snap.Complete() || snap.Period != 2 || snap.HomeScore != 1 {
		t.Fatalf("unexpected snapshot fixture %+v", snap)
	}
	if p := SamplePlayer("Anna", "Omark", "LHF"); p.ShortName() != "A. Omark" {
		t.Fatalf("unexpected player fixture %+v", p)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestFailingBackend(t *testing.T) {
	b := NewFailingBackend()
	ctx := context.Background()
	if err := b.Put(ctx, "k", []byte("1")); err != nil {
		t.Fatalf("expected healthy put, got %v", err)
	}
	b.Fail.Store(true)
	if err := b.Put(ctx, "k", []byte("2")); !errors.Is(err, ErrStoreDown) {
		t.Fatalf("expected store down, got %v", err)
	}
	got, err := b.Get(ctx, "k")
	if err != nil || string(got) != "1" {
		t.Fatalf("expected reads to keep working, got %q err %v", got, err)
	}
	if _, err := b.Get(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	b.FailReads.Store(true)
	if _, err := b.Get(ctx, "k"); !errors.Is(err, ErrStoreDown) {
		t.Fatalf("expected failing read, got %v", err)
	}
}

func TestFakeHTTPServer(t *testing.T) {
	srv := &FakeHTTPServer{ListenErr: http.ErrServerClosed}
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected configured listen error, got %v", err)
	}
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("unheld shutdown: %v", err)
	}
	if listens, shutdowns := srv.Calls(); listens != 1 || shutdowns != 1 {
		t.Fatalf("unexpected calls %d/%d", listens, shutdowns)
	}
	if srv.Addr() != ":0" {
		t.Fatalf("expected default addr, got %s", srv.Addr())
	}
	AssertStatus(t, Serve(srv.Handler(), http.MethodGet, "/", nil), http.StatusNotFound)

	held := &FakeHTTPServer{Hold: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := held.Shutdown(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected held shutdown to follow ctx, got %v", err)
	}
	close(held.Hold)
	if err := held.Shutdown(context.Background()); err != nil {
		t.Fatalf("expected released shutdown, got %v", err)
	}
}
