package shl

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/domain/players"
)

const (
	gameRecapKey  = "gameRecap"
	firstRecapKey = "0"
)

func mapGame(g gameResponse) games.Game {
	start, _ := time.Parse(time.RFC3339, g.StartDateTime)
	game := games.Game{
		UUID:      g.GameUUID,
		ID:        g.GameID,
		Season:    g.Season,
		StartTime: start.UTC(),
		HomeTeam:  g.HomeTeamCode,
		AwayTeam:  g.AwayTeamCode,
		HomeScore: g.HomeTeamResult,
		AwayScore: g.AwayTeamResult,
		Played:    g.Played,
		Status:    games.StatusComing,
	}
	if g.Played {
		game.Status = games.StatusPlayed
	}
	return game
}

func mapSnapshot(s statsResponse) *games.Snapshot {
	snap := &games.Snapshot{
		GameUUID:  s.GameUUID,
		GameID:    s.GameID,
		HomeTeam:  s.HomeTeamCode,
		AwayTeam:  s.AwayTeamCode,
		HomeScore: s.HomeScore,
		AwayScore: s.AwayScore,
		Period:    s.Period,
		Gametime:  strings.TrimSpace(s.Gametime),
		Played:    strings.EqualFold(s.Status, "Finished") || strings.EqualFold(s.Status, "Played"),
		Recap:     mapRecap(s.Recaps),
	}
	for _, g := range s.Goals {
		snap.Goals = append(snap.Goals, games.GoalRecord{
			Team:      g.Team,
			Period:    g.Period,
			Gametime:  g.Gametime,
			HomeScore: g.HomeScore,
			AwayScore: g.AwayScore,
			PowerPlay: strings.HasPrefix(strings.ToUpper(g.GoalType), "PP"),
			Player:    mapPlayerPtr(g.Player, g.Team),
		})
	}
	for _, p := range s.Penalties {
		snap.Penalties = append(snap.Penalties, games.PenaltyRecord{
			Team:     p.Team,
			Period:   p.Period,
			Gametime: p.Gametime,
			Minutes:  p.Minutes,
			Reason:   strings.TrimSpace(p.Reason),
			Player:   mapPlayerPtr(p.Player, p.Team),
		})
	}
	if len(s.Players) > 0 {
		snap.Rosters = make(map[string][]players.Player, len(s.Players))
		for team, roster := range s.Players {
			for _, p := range roster {
				snap.Rosters[team] = append(snap.Rosters[team], mapPlayer(p, team))
			}
		}
	}
	return snap
}

// mapRecap returns nil when the whole-game recap or the first period entry is missing,
// which marks the snapshot incomplete.
func mapRecap(recaps map[string]recapResponse) *games.Recap {
	whole, ok := recaps[gameRecapKey]
	if !ok {
		return nil
	}
	if _, ok := recaps[firstRecapKey]; !ok {
		return nil
	}
	recap := &games.Recap{
		HomeShots:      whole.HomeShots,
		AwayShots:      whole.AwayShots,
		HomePenalties:  whole.HomePenalties,
		AwayPenalties:  whole.AwayPenalties,
		HomePIMMinutes: whole.HomePIM,
		AwayPIMMinutes: whole.AwayPIM,
	}
	for key, r := range recaps {
		period, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		recap.Periods = append(recap.Periods, games.PeriodRecap{Period: period, HomeGoals: r.HomeG, AwayGoals: r.AwayG})
	}
	sort.Slice(recap.Periods, func(i, j int) bool {
		return recap.Periods[i].Period < recap.Periods[j].Period
	})
	return recap
}

func mapPlayer(p playerResponse, team string) players.Player {
	if p.TeamCode != "" {
		team = p.TeamCode
	}
	return players.Player{
		ID:         p.PlayerID,
		FirstName:  strings.TrimSpace(p.FirstName),
		FamilyName: strings.TrimSpace(p.LastName),
		Jersey:     p.Jersey,
		Position:   p.Position,
		Team:       team,
	}
}

func mapPlayerPtr(p *playerResponse, team string) *players.Player {
	if p == nil {
		return nil
	}
	mapped := mapPlayer(*p, team)
	return &mapped
}

func mapStanding(s standingResponse) games.Standing {
	return games.Standing{
		Rank:           s.Rank,
		Team:           s.TeamCode,
		GamesPlayed:    s.GP,
		Wins:           s.W,
		OvertimeWins:   s.OTW,
		Losses:         s.L,
		OvertimeLosses: s.OTL,
		GoalDiff:       s.Diff,
		Points:         s.Points,
	}
}
