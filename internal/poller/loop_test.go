package poller

import (
	"context"
	"testing"
	"time"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
)

func TestStartRunsTicksUntilStopped(t *testing.T) {
	h := newHarness(t)
	h.feed.SetSchedule([]games.Game{}, nil)
	h.feed.Notify = make(chan struct{})
	h.p.cfg.IdleInterval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.p.Start(ctx)
	h.p.Start(ctx)

	select {
	case <-h.feed.Notify:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for first tick")
	}
	deadline := time.Now().Add(time.Second)
	for h.feed.Calls.Load() < 4 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if h.feed.Calls.Load() < 4 {
		t.Fatalf("expected repeated ticks, got %d feed calls", h.feed.Calls.Load())
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := h.p.Stop(stopCtx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := h.p.Stop(stopCtx); err != nil {
		t.Fatalf("second stop: %v", err)
	}
	calls := h.feed.Calls.Load()
	time.Sleep(20 * time.Millisecond)
	if h.feed.Calls.Load() != calls {
		t.Fatalf("expected no ticks after stop")
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	h := newHarness(t)
	h.feed.Notify = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	h.p.Start(ctx)
	select {
	case <-h.feed.Notify:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for first tick")
	}
	cancel()

	select {
	case <-h.p.stopped:
	case <-time.After(time.Second):
		t.Fatal("expected loop to exit on cancel")
	}
}

func TestStopWithoutStart(t *testing.T) {
	h := newHarness(t)
	if err := h.p.Stop(context.Background()); err != nil {
		t.Fatalf("expected clean stop, got %v", err)
	}
}
