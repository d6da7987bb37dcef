// Package fixture implements providers.Feed with a scripted, clock-driven set of SHL games
// for local runs and tests.
package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/domain/players"
	"github.com/preston-bernstein/shl-live-service/internal/domain/teams"
	"github.com/preston-bernstein/shl-live-service/internal/providers"
)

const (
	providerName  = "fixture"
	periodMinutes = 20
	gameMinutes   = 3 * periodMinutes
)

type scriptedGoal struct {
	minute    int
	home      bool
	powerPlay bool
	player    players.Player
}

type scriptedPenalty struct {
	minute  int
	home    bool
	minutes int
	reason  string
	player  players.Player
}

type scriptedGame struct {
	uuid      string
	id        int
	home      string
	away      string
	offset    time.Duration // start relative to the anchor hour
	goals     []scriptedGoal
	penalties []scriptedPenalty
}

var (
	omark    = players.Player{ID: "fx-1", FirstName: "Linus", FamilyName: "Omark", Jersey: 67, Position: "F", Team: "LHF"}
	lander   = players.Player{ID: "fx-2", FirstName: "Anton", FamilyName: "Lander", Jersey: 14, Position: "F", Team: "LHF"}
	berglund = players.Player{ID: "fx-3", FirstName: "Mattias", FamilyName: "Berglund", Jersey: 12, Position: "D", Team: "FBK"}
	ekholm   = players.Player{ID: "fx-4", FirstName: "Hugo", FamilyName: "Ekholm", Jersey: 21, Position: "F", Team: "FBK"}
	sandin   = players.Player{ID: "fx-5", FirstName: "Oscar", FamilyName: "Sandin", Jersey: 9, Position: "F", Team: "SAIK"}
	nyberg   = players.Player{ID: "fx-6", FirstName: "Erik", FamilyName: "Nyberg", Jersey: 3, Position: "D", Team: "TIK"}
)

var script = []scriptedGame{
	{
		uuid: "fixture-lhf-fbk", id: 1001, home: "LHF", away: "FBK", offset: -30 * time.Minute,
		goals: []scriptedGoal{
			{minute: 8, home: true, player: omark},
			{minute: 31, home: false, powerPlay: true, player: ekholm},
			{minute: 52, home: true, player: lander},
		},
		penalties: []scriptedPenalty{
			{minute: 12, home: false, minutes: 2, reason: "Hooking", player: berglund},
			{minute: 29, home: true, minutes: 2, reason: "Tripping", player: lander},
		},
	},
	{
		uuid: "fixture-saik-tik", id: 1002, home: "SAIK", away: "TIK", offset: 2 * time.Hour,
		goals: []scriptedGoal{
			{minute: 17, home: false, player: nyberg},
			{minute: 44, home: true, player: sandin},
		},
	},
	{
		uuid: "fixture-fhc-hv71", id: 1003, home: "FHC", away: "HV71", offset: -26 * time.Hour,
	},
}

// Provider returns scripted games whose state advances with its clock.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

func (p *Provider) anchor() time.Time {
	return p.now().UTC().Truncate(time.Hour)
}

// FetchSchedule returns the scripted games with their current scores.
func (p *Provider) FetchSchedule(_ context.Context, season int) ([]games.Game, error) {
	now := p.now().UTC()
	out := make([]games.Game, 0, len(script))
	for _, sg := range script {
		start := p.anchor().Add(sg.offset)
		snap := sg.snapshotAt(now.Sub(start))
		out = append(out, games.Game{
			UUID:      sg.uuid,
			ID:        sg.id,
			Season:    season,
			StartTime: start,
			HomeTeam:  sg.home,
			AwayTeam:  sg.away,
			HomeScore: snap.HomeScore,
			AwayScore: snap.AwayScore,
			Played:    snap.Played,
			Status:    snap.Status(),
		})
	}
	return out, nil
}

// FetchSnapshot returns the state of a scripted game at the current clock.
func (p *Provider) FetchSnapshot(_ context.Context, gameUUID string, gameID int) (*games.Snapshot, error) {
	for _, sg := range script {
		if sg.uuid != gameUUID {
			continue
		}
		start := p.anchor().Add(sg.offset)
		return sg.snapshotAt(p.now().UTC().Sub(start)), nil
	}
	return nil, &providers.UpstreamError{
		Provider:   providerName,
		Op:         "snapshot",
		StatusCode: 404,
		Err:        fmt.Errorf("unknown game %s (%d)", gameUUID, gameID),
	}
}

// FetchStandings returns a deterministic table over every registered team.
func (p *Provider) FetchStandings(_ context.Context, _ int) ([]games.Standing, error) {
	all := teams.All()
	out := make([]games.Standing, 0, len(all))
	for i, t := range all {
		wins := len(all) - i
		out = append(out, games.Standing{
			Rank:        i + 1,
			Team:        t.Code,
			GamesPlayed: len(all),
			Wins:        wins,
			Losses:      len(all) - wins,
			GoalDiff:    2*wins - len(all),
			Points:      3 * wins,
		})
	}
	return out, nil
}

// FetchPlayers returns every scripted player.
func (p *Provider) FetchPlayers(_ context.Context, _ int) ([]players.Player, error) {
	return []players.Player{omark, lander, berglund, ekholm, sandin, nyberg}, nil
}

func (sg scriptedGame) snapshotAt(elapsed time.Duration) *games.Snapshot {
	minute := int(elapsed / time.Minute)
	snap := &games.Snapshot{
		GameUUID: sg.uuid,
		GameID:   sg.id,
		HomeTeam: sg.home,
		AwayTeam: sg.away,
		Recap:    &games.Recap{},
		Rosters:  map[string][]players.Player{},
	}
	for _, pl := range []players.Player{omark, lander, berglund, ekholm, sandin, nyberg} {
		if pl.Team == sg.home || pl.Team == sg.away {
			snap.Rosters[pl.Team] = append(snap.Rosters[pl.Team], pl)
		}
	}
	if elapsed < 0 {
		return snap
	}

	switch {
	case minute >= gameMinutes:
		snap.Period = 3
		snap.Played = true
		snap.Gametime = fmt.Sprintf("%02d:00", periodMinutes)
	default:
		snap.Period = minute/periodMinutes + 1
		snap.Gametime = fmt.Sprintf("%02d:%02d", minute%periodMinutes, int(elapsed/time.Second)%60)
	}

	for _, g := range sg.goals {
		if g.minute > minute {
			continue
		}
		team := sg.away
		if g.home {
			snap.HomeScore++
			team = sg.home
		} else {
			snap.AwayScore++
		}
		scorer := g.player
		snap.Goals = append(snap.Goals, games.GoalRecord{
			Team:      team,
			Period:    g.minute/periodMinutes + 1,
			Gametime:  fmt.Sprintf("%02d:00", g.minute%periodMinutes),
			HomeScore: snap.HomeScore,
			AwayScore: snap.AwayScore,
			PowerPlay: g.powerPlay,
			Player:    &scorer,
		})
	}
	for _, pen := range sg.penalties {
		if pen.minute > minute {
			continue
		}
		team := sg.away
		if pen.home {
			snap.Recap.HomePenalties++
			snap.Recap.HomePIMMinutes += pen.minutes
			team = sg.home
		} else {
			snap.Recap.AwayPenalties++
			snap.Recap.AwayPIMMinutes += pen.minutes
		}
		offender := pen.player
		snap.Penalties = append(snap.Penalties, games.PenaltyRecord{
			Team:     team,
			Period:   pen.minute/periodMinutes + 1,
			Gametime: fmt.Sprintf("%02d:00", pen.minute%periodMinutes),
			Minutes:  pen.minutes,
			Reason:   pen.reason,
			Player:   &offender,
		})
	}
	for period := 1; period <= snap.Period; period++ {
		pr := games.PeriodRecap{Period: period}
		for _, g := range snap.Goals {
			if g.Period != period {
				continue
			}
			if g.Team == sg.home {
				pr.HomeGoals++
			} else {
				pr.AwayGoals++
			}
		}
		snap.Recap.Periods = append(snap.Recap.Periods, pr)
	}
	return snap
}

var _ providers.Feed = (*Provider)(nil)
