package standings

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/providers"
	"github.com/preston-bernstein/shl-live-service/internal/store"
	"github.com/preston-bernstein/shl-live-service/internal/teststubs"
	"github.com/preston-bernstein/shl-live-service/internal/testutil"
)

func TestStandingsService(t *testing.T) {
	feed := &teststubs.StubFeed{}
	feed.SetStandings([]games.Standing{{Rank: 1, Team: "LHF", Points: 30}}, nil)
	backend := store.NewMemoryBackend()
	svc := NewService(feed, backend, 2030, nil)
	ctx := context.Background()

	table, err := svc.Update(ctx)
	if err != nil || len(table) != 1 {
		t.Fatalf("expected standings, got %+v err %v", table, err)
	}

	feed.SetStandings(nil, errors.New("boom"))
	table, err = svc.Update(ctx)
	if !providers.IsUpstream(err) || len(table) != 1 || table[0].Team != "LHF" {
		t.Fatalf("expected cached standings with upstream error, got %+v err %v", table, err)
	}

	read, err := NewService(feed, backend, 2030, nil).Read(ctx)
	if err != nil || len(read) != 1 {
		t.Fatalf("expected persisted standings, got %+v err %v", read, err)
	}
	if len(svc.ReadCached()) != 1 {
		t.Fatalf("expected cached standings")
	}
}

func TestStandingsStoreFailure(t *testing.T) {
	feed := &teststubs.StubFeed{}
	feed.SetStandings([]games.Standing{{Rank: 1, Team: "LHF"}}, nil)
	backend := testutil.NewFailingBackend()
	backend.Fail.Store(true)

	if _, err := NewService(feed, backend, 2030, nil).Update(context.Background()); !errors.Is(err, testutil.ErrStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
}
