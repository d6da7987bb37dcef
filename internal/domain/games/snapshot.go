package games

import (
	"fmt"
	"slices"

	"github.com/preston-bernstein/shl-live-service/internal/domain/players"
)

// Snapshot is the fullest known state of one game at a point in time.
// A snapshot without a Recap is not authoritative and must not replace a cached one.
type Snapshot struct {
	GameUUID  string                      `json:"game_uuid"`
	GameID    int                         `json:"game_id"`
	HomeTeam  string                      `json:"home_team_code"`
	AwayTeam  string                      `json:"away_team_code"`
	HomeScore int                         `json:"home_score"`
	AwayScore int                         `json:"away_score"`
	Period    int                         `json:"period"`
	Gametime  string                      `json:"gametime,omitempty"`
	Played    bool                        `json:"played"`
	Recap     *Recap                      `json:"recap,omitempty"`
	Goals     []GoalRecord                `json:"goals,omitempty"`
	Penalties []PenaltyRecord             `json:"penalties,omitempty"`
	Rosters   map[string][]players.Player `json:"rosters,omitempty"`
}

// Recap is the summary section of a snapshot.
type Recap struct {
	Periods        []PeriodRecap `json:"periods"`
	HomeShots      int           `json:"home_shots"`
	AwayShots      int           `json:"away_shots"`
	HomePenalties  int           `json:"home_penalties"`
	AwayPenalties  int           `json:"away_penalties"`
	HomePIMMinutes int           `json:"home_pim"`
	AwayPIMMinutes int           `json:"away_pim"`
}

// PeriodRecap summarises goals per period.
type PeriodRecap struct {
	Period    int `json:"period"`
	HomeGoals int `json:"home_goals"`
	AwayGoals int `json:"away_goals"`
}

// GoalRecord is one scoring play as reported by the feed.
type GoalRecord struct {
	Team      string          `json:"team"`
	Period    int             `json:"period"`
	Gametime  string          `json:"gametime"`
	HomeScore int             `json:"home_score"`
	AwayScore int             `json:"away_score"`
	PowerPlay bool            `json:"power_play"`
	Player    *players.Player `json:"player,omitempty"`
}

// PenaltyRecord is one penalty as reported by the feed.
type PenaltyRecord struct {
	Team     string          `json:"team"`
	Period   int             `json:"period"`
	Gametime string          `json:"gametime"`
	Minutes  int             `json:"minutes"`
	Reason   string          `json:"reason"`
	Player   *players.Player `json:"player,omitempty"`
}

// Complete reports whether the snapshot carries its recap payload.
func (s *Snapshot) Complete() bool {
	return s != nil && s.Recap != nil
}

// Status derives the lifecycle state of the snapshot.
func (s *Snapshot) Status() Status {
	if s == nil {
		return StatusComing
	}
	if s.Played {
		return StatusPlayed
	}
	return StatusFromPeriod(s.Period)
}

// ScoreString renders the score as "HOME h - a AWAY".
func (s *Snapshot) ScoreString() string {
	return ScoreString(s.HomeTeam, s.HomeScore, s.AwayScore, s.AwayTeam)
}

// PenaltyCount returns how many penalties team has taken, taking the larger of the
// itemised records and the recap counter.
func (s *Snapshot) PenaltyCount(team string) int {
	if s == nil {
		return 0
	}
	n := len(s.PenaltiesFor(team))
	if s.Recap != nil {
		recapped := 0
		switch team {
		case s.HomeTeam:
			recapped = s.Recap.HomePenalties
		case s.AwayTeam:
			recapped = s.Recap.AwayPenalties
		}
		n = max(n, recapped)
	}
	return n
}

// PenaltiesFor returns the penalty records of team in feed order.
func (s *Snapshot) PenaltiesFor(team string) []PenaltyRecord {
	if s == nil {
		return nil
	}
	var out []PenaltyRecord
	for _, p := range s.Penalties {
		if p.Team == team {
			out = append(out, p)
		}
	}
	return out
}

// GoalAt finds the scoring record that produced the given scoreline.
func (s *Snapshot) GoalAt(home, away int) (GoalRecord, bool) {
	if s == nil {
		return GoalRecord{}, false
	}
	for _, g := range s.Goals {
		if g.HomeScore == home && g.AwayScore == away {
			return g, true
		}
	}
	return GoalRecord{}, false
}

// LastGoalBy returns the most recent scoring record of team.
func (s *Snapshot) LastGoalBy(team string) (GoalRecord, bool) {
	if s == nil {
		return GoalRecord{}, false
	}
	for i := len(s.Goals) - 1; i >= 0; i-- {
		if s.Goals[i].Team == team {
			return s.Goals[i], true
		}
	}
	return GoalRecord{}, false
}

// ScoreString renders a scoreline as "HOME h - a AWAY".
func ScoreString(home string, homeScore, awayScore int, away string) string {
	return fmt.Sprintf("%s %d - %d %s", home, homeScore, awayScore, away)
}

// Clone returns a copy of s that shares no slices with it.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	if s.Recap != nil {
		recap := *s.Recap
		recap.Periods = slices.Clone(s.Recap.Periods)
		c.Recap = &recap
	}
	c.Goals = slices.Clone(s.Goals)
	c.Penalties = slices.Clone(s.Penalties)
	if s.Rosters != nil {
		c.Rosters = make(map[string][]players.Player, len(s.Rosters))
		for team, roster := range s.Rosters {
			c.Rosters[team] = slices.Clone(roster)
		}
	}
	return &c
}
