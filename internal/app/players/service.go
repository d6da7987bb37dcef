// Package players keeps the season's rostered players.
package players

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	domainplayers "github.com/preston-bernstein/shl-live-service/internal/domain/players"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/providers"
	"github.com/preston-bernstein/shl-live-service/internal/store"
)

// Service coordinates player refreshes against a document store.
type Service struct {
	feed   providers.PlayerFeed
	doc    *store.Doc[[]domainplayers.Player]
	season int
	logger *slog.Logger
}

// NewService constructs a players Service for season.
func NewService(feed providers.PlayerFeed, backend store.Backend, season int, logger *slog.Logger) *Service {
	return &Service{
		feed:   feed,
		doc:    store.NewDoc(backend, fmt.Sprintf("players/%d", season), func() []domainplayers.Player { return []domainplayers.Player{} }),
		season: season,
		logger: logger,
	}
}

// Update refetches the season's players and stores them. It runs when a game ends.
func (s *Service) Update(ctx context.Context) error {
	fetched, err := s.feed.FetchPlayers(ctx, s.season)
	if err != nil {
		logging.Warn(s.logger, "players fetch failed",
			slog.Int(logging.FieldSeason, s.season),
			slog.Any("err", err),
		)
		return providers.Upstream("feed", "players", err)
	}
	sort.SliceStable(fetched, func(i, j int) bool {
		if fetched[i].Team != fetched[j].Team {
			return fetched[i].Team < fetched[j].Team
		}
		return fetched[i].FamilyName < fetched[j].FamilyName
	})
	if err := s.doc.Write(ctx, fetched); err != nil {
		return fmt.Errorf("store players: %w", err)
	}
	logging.Info(s.logger, "players updated",
		slog.Int(logging.FieldSeason, s.season),
		slog.Int(logging.FieldCount, len(fetched)),
	)
	return nil
}

// Players returns the stored players, optionally restricted to one team.
func (s *Service) Players(ctx context.Context, team string) ([]domainplayers.Player, error) {
	all, err := s.doc.Read(ctx)
	if err != nil {
		return nil, err
	}
	if team == "" {
		return all, nil
	}
	out := make([]domainplayers.Player, 0)
	for _, p := range all {
		if p.Team == team {
			out = append(out, p)
		}
	}
	return out, nil
}

// PlayerByID returns a single player if present.
func (s *Service) PlayerByID(ctx context.Context, id string) (domainplayers.Player, bool, error) {
	all, err := s.doc.Read(ctx)
	if err != nil {
		return domainplayers.Player{}, false, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, true, nil
		}
	}
	return domainplayers.Player{}, false, nil
}
