package providers

import (
	"context"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/domain/players"
)

// ScheduleFeed fetches the season schedule.
type ScheduleFeed interface {
	FetchSchedule(ctx context.Context, season int) ([]games.Game, error)
}

// SnapshotFeed fetches the current state of one game.
type SnapshotFeed interface {
	FetchSnapshot(ctx context.Context, gameUUID string, gameID int) (*games.Snapshot, error)
}

// StandingsFeed fetches the league table.
type StandingsFeed interface {
	FetchStandings(ctx context.Context, season int) ([]games.Standing, error)
}

// PlayerFeed fetches the season's rostered players.
type PlayerFeed interface {
	FetchPlayers(ctx context.Context, season int) ([]players.Player, error)
}

// Feed combines all upstream capabilities.
type Feed interface {
	ScheduleFeed
	SnapshotFeed
	StandingsFeed
	PlayerFeed
}
