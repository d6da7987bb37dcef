package events

import (
	"context"
	"errors"
	"testing"

	domainevents "github.com/preston-bernstein/shl-live-service/internal/domain/events"
	"github.com/preston-bernstein/shl-live-service/internal/store"
	"github.com/preston-bernstein/shl-live-service/internal/testutil"
)

func goalEvent3to0() domainevents.Event {
	info := domainevents.InfoFrom(snap(2, 3, 0))
	return domainevents.New(info, domainevents.Goal{Team: "LHF"}, now)
}

func TestLogStoreAndDedup(t *testing.T) {
	log := NewLog(store.NewMemoryBackend(), nil)
	ctx := context.Background()
	ev := goalEvent3to0()

	if log.IsDuplicate(ev) {
		t.Fatalf("expected new event")
	}
	if err := log.Store(ctx, "g1", ev); err != nil {
		t.Fatalf("store: %v", err)
	}
	if !log.IsDuplicate(ev) {
		t.Fatalf("expected stored event to be a duplicate")
	}
	if log.IsDuplicate(domainevents.New(ev.Info, domainevents.GameEnd{}, now)) {
		t.Fatalf("expected different identity to be new")
	}

	// Store never dedups on its own.
	if err := log.Store(ctx, "g1", ev); err != nil {
		t.Fatalf("store: %v", err)
	}
	if got := log.CachedEvents("g1"); len(got) != 2 {
		t.Fatalf("expected unconditional append, got %d events", len(got))
	}
}

func TestLogKeepsInsertionOrderAndPayloads(t *testing.T) {
	backend := store.NewMemoryBackend()
	log := NewLog(backend, nil)
	ctx := context.Background()
	info := domainevents.InfoFrom(snap(1, 0, 0))

	_ = log.Store(ctx, "g1", domainevents.New(info, domainevents.GameStart{}, now))
	_ = log.Store(ctx, "g1", domainevents.New(info, domainevents.PeriodStart{Period: 1}, now))
	_ = log.Store(ctx, "g1", goalEvent3to0())

	restarted := NewLog(backend, nil)
	got, err := restarted.Events(ctx, "g1")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	assertIDs(t, got, "GameStart", "PeriodStart1", "GoalLHF 3 - 0 FBK")
	if g, ok := got[2].Payload.(domainevents.Goal); !ok || g.Team != "LHF" {
		t.Fatalf("expected goal payload to survive persistence, got %#v", got[2].Payload)
	}
	if other, _ := restarted.Events(ctx, "g2"); len(other) != 0 {
		t.Fatalf("expected empty log for unknown game")
	}
}

func TestLogPrimeEnablesDedupAfterRestart(t *testing.T) {
	backend := store.NewMemoryBackend()
	ctx := context.Background()
	ev := goalEvent3to0()
	_ = NewLog(backend, nil).Store(ctx, "g1", ev)

	restarted := NewLog(backend, nil)
	if restarted.IsDuplicate(ev) {
		t.Fatalf("expected cold cache to miss before priming")
	}
	if err := restarted.Prime(ctx, "g1"); err != nil {
		t.Fatalf("prime: %v", err)
	}
	if !restarted.IsDuplicate(ev) {
		t.Fatalf("expected primed log to dedup")
	}
}

func TestLogStoreFailure(t *testing.T) {
	backend := testutil.NewFailingBackend()
	backend.Fail.Store(true)
	log := NewLog(backend, nil)

	err := log.Store(context.Background(), "g1", goalEvent3to0())
	if !errors.Is(err, testutil.ErrStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	if log.IsDuplicate(goalEvent3to0()) {
		t.Fatalf("expected failed write not to be cached")
	}
}
