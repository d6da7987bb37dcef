// Package schedule keeps the season schedule and decides which games are live-eligible.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/providers"
	"github.com/preston-bernstein/shl-live-service/internal/store"
)

// SnapshotCache exposes the cached snapshot of a game.
type SnapshotCache interface {
	FromCache(gameUUID string) *games.Snapshot
}

// Service coordinates schedule refreshes against a document store.
type Service struct {
	feed      providers.ScheduleFeed
	doc       *store.Doc[[]games.Game]
	season    int
	snapshots SnapshotCache
	logger    *slog.Logger
}

// NewService constructs a schedule Service for season. snapshots may be nil, in which case
// games are returned as the feed reported them.
func NewService(feed providers.ScheduleFeed, backend store.Backend, season int, snapshots SnapshotCache, logger *slog.Logger) *Service {
	return &Service{
		feed:      feed,
		doc:       store.NewDoc(backend, fmt.Sprintf("schedule/%d", season), func() []games.Game { return []games.Game{} }),
		season:    season,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Season returns the season this service tracks.
func (s *Service) Season() int {
	return s.season
}

// Update refreshes the schedule from the feed and returns it decorated with cached snapshots.
//
// When the feed fails, the last known schedule is returned together with an upstream error
// (see providers.IsUpstream). Any other error means the store could not be read or written.
func (s *Service) Update(ctx context.Context) ([]games.Game, error) {
	fetched, err := s.feed.FetchSchedule(ctx, s.season)
	if err != nil {
		logging.Warn(s.logger, "schedule fetch failed, using cache",
			slog.Int(logging.FieldSeason, s.season),
			slog.Any("err", err),
		)
		cached, readErr := s.current(ctx)
		if readErr != nil {
			return nil, readErr
		}
		return s.decorate(cached), providers.Upstream("feed", "schedule", err)
	}

	if err := s.doc.Write(ctx, fetched); err != nil {
		return nil, fmt.Errorf("store schedule: %w", err)
	}
	return s.decorate(fetched), nil
}

// Read loads the persisted schedule, decorated with cached snapshots.
func (s *Service) Read(ctx context.Context) ([]games.Game, error) {
	list, err := s.doc.Read(ctx)
	if err != nil {
		return nil, err
	}
	return s.decorate(list), nil
}

// Decorated returns the cached schedule with each game carrying the scores and played flag of
// its cached snapshot.
func (s *Service) Decorated() []games.Game {
	return s.decorate(s.doc.ReadCached())
}

func (s *Service) current(ctx context.Context) ([]games.Game, error) {
	if s.doc.Cached() {
		return s.doc.ReadCached(), nil
	}
	return s.doc.Read(ctx)
}

func (s *Service) decorate(list []games.Game) []games.Game {
	if s.snapshots == nil {
		return list
	}
	out := make([]games.Game, len(list))
	for i, g := range list {
		out[i] = g.Decorate(s.snapshots.FromCache(g.UUID))
	}
	return out
}

// LiveGames returns, in schedule order, the games that have not been played and start within
// window of now.
func LiveGames(schedule []games.Game, now time.Time, window time.Duration) []games.Game {
	var out []games.Game
	for _, g := range schedule {
		if g.LiveEligible(now, window) {
			out = append(out, g)
		}
	}
	return out
}
