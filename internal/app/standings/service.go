// Package standings keeps the league table.
package standings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/providers"
	"github.com/preston-bernstein/shl-live-service/internal/store"
)

// Service coordinates standings refreshes against a document store.
type Service struct {
	feed   providers.StandingsFeed
	doc    *store.Doc[[]games.Standing]
	season int
	logger *slog.Logger
}

// NewService constructs a standings Service for season.
func NewService(feed providers.StandingsFeed, backend store.Backend, season int, logger *slog.Logger) *Service {
	return &Service{
		feed:   feed,
		doc:    store.NewDoc(backend, fmt.Sprintf("standings/%d", season), func() []games.Standing { return []games.Standing{} }),
		season: season,
		logger: logger,
	}
}

// Update refreshes the standings from the feed. On feed failure the cached table is returned
// with an upstream error.
func (s *Service) Update(ctx context.Context) ([]games.Standing, error) {
	fetched, err := s.feed.FetchStandings(ctx, s.season)
	if err != nil {
		logging.Warn(s.logger, "standings fetch failed, using cache",
			slog.Int(logging.FieldSeason, s.season),
			slog.Any("err", err),
		)
		return s.doc.ReadCached(), providers.Upstream("feed", "standings", err)
	}
	if err := s.doc.Write(ctx, fetched); err != nil {
		return nil, fmt.Errorf("store standings: %w", err)
	}
	return fetched, nil
}

// Read loads the persisted standings.
func (s *Service) Read(ctx context.Context) ([]games.Standing, error) {
	return s.doc.Read(ctx)
}

// ReadCached returns the last known standings.
func (s *Service) ReadCached() []games.Standing {
	return s.doc.ReadCached()
}
