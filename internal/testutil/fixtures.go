package testutil

import (
	"time"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/domain/players"
)

// SampleGame returns an LHF-FBK game fixture with the provided uuid starting at start.
func SampleGame(uuid string, start time.Time) games.Game {
	return games.Game{
		UUID:      uuid,
		ID:        1,
		Season:    2030,
		StartTime: start,
		HomeTeam:  "LHF",
		AwayTeam:  "FBK",
		Status:    games.StatusComing,
	}
}

// SampleSnapshot returns a complete LHF-FBK snapshot for uuid at the given period and score.
func SampleSnapshot(uuid string, period, home, away int) *games.Snapshot {
	return &games.Snapshot{
		GameUUID:  uuid,
		GameID:    1,
		HomeTeam:  "LHF",
		AwayTeam:  "FBK",
		HomeScore: home,
		AwayScore: away,
		Period:    period,
		Gametime:  "10:00",
		Recap:     &games.Recap{},
	}
}

// SamplePlayer returns a player fixture on team.
func SamplePlayer(first, family, team string) *players.Player {
	return &players.Player{FirstName: first, FamilyName: family, Team: team}
}
