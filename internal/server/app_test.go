package server

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/shl-live-service/internal/metrics"
	"github.com/preston-bernstein/shl-live-service/internal/store"
	"github.com/preston-bernstein/shl-live-service/internal/teststubs"
)

func TestNewAppTickPersistsSchedule(t *testing.T) {
	ctx := context.Background()
	app, err := NewApp(ctx, memoryConfig(), nil, metrics.NewRecorder())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer app.Close()

	if _, err := app.Poller.Tick(ctx); err != nil {
		t.Fatalf("tick over fixture feed: %v", err)
	}
	list, err := app.Services.Schedule.Read(ctx)
	if err != nil {
		t.Fatalf("read schedule: %v", err)
	}
	if len(list) == 0 {
		t.Fatalf("expected fixture schedule persisted")
	}
	table, err := app.Services.Standings.Read(ctx)
	if err != nil || len(table) == 0 {
		t.Fatalf("expected standings persisted, got %d err %v", len(table), err)
	}
}

func TestNewAppUsesGivenCollaborators(t *testing.T) {
	feed := &teststubs.StubFeed{}
	backend := store.NewMemoryBackend()
	transport := &teststubs.StubTransport{}

	app := newAppWith(memoryConfig(), backend, nil, feed, transport, nil, nil)
	if app.Feed != feed || app.Backend != backend {
		t.Fatalf("expected injected feed and backend")
	}
	if err := app.Close(); err != nil {
		t.Fatalf("close with no connection: %v", err)
	}

	// The poller reads the same stores the API serves.
	feed.SetSchedule(nil, errors.New("feed down"))
	if _, err := app.Poller.Tick(context.Background()); err == nil {
		t.Fatalf("expected feed failure to mark the tick")
	}
	if got := app.Poller.Status().ConsecutiveFailures; got != 1 {
		t.Fatalf("expected failure recorded, got %d", got)
	}
}

func TestAppCloseNil(t *testing.T) {
	var app *App
	if err := app.Close(); err != nil {
		t.Fatalf("expected nil app close to succeed, got %v", err)
	}
}
