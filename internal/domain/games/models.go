package games

import (
	"fmt"
	"time"
)

// Game is one entry of a season schedule.
type Game struct {
	UUID      string    `json:"game_uuid"`
	ID        int       `json:"game_id"`
	Season    int       `json:"season"`
	StartTime time.Time `json:"start_date_time"`
	HomeTeam  string    `json:"home_team_code"`
	AwayTeam  string    `json:"away_team_code"`
	HomeScore int       `json:"home_team_result"`
	AwayScore int       `json:"away_team_result"`
	Played    bool      `json:"played"`
	Status    Status    `json:"status"`
}

// LiveEligible reports whether the game should be polled: it starts within window of now
// (or has already started) and has not been played.
func (g Game) LiveEligible(now time.Time, window time.Duration) bool {
	if g.Played {
		return false
	}
	return !g.StartTime.After(now.Add(window))
}

// Decorate returns a copy of g carrying the scores, status and played flag of snap.
func (g Game) Decorate(snap *Snapshot) Game {
	if snap == nil || snap.GameUUID != g.UUID {
		return g
	}
	g.HomeScore = snap.HomeScore
	g.AwayScore = snap.AwayScore
	g.Played = g.Played || snap.Played
	g.Status = snap.Status()
	return g
}

// String renders a compact description used in logs.
func (g Game) String() string {
	return fmt.Sprintf("%d %s-%s %s played=%t", g.ID, g.HomeTeam, g.AwayTeam, g.Status, g.Played)
}

// Standing is one row of the league table.
type Standing struct {
	Rank           int    `json:"rank"`
	Team           string `json:"team_code"`
	GamesPlayed    int    `json:"gp"`
	Wins           int    `json:"w"`
	OvertimeWins   int    `json:"otw"`
	Losses         int    `json:"l"`
	OvertimeLosses int    `json:"otl"`
	GoalDiff       int    `json:"diff"`
	Points         int    `json:"points"`
}
