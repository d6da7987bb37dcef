// Package events turns successive snapshots of a game into game events and keeps the
// per-game event log used to emit each event at most once.
package events

import (
	"time"

	domainevents "github.com/preston-bernstein/shl-live-service/internal/domain/events"
	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
)

// Derive returns the events implied by moving from prev to next, in emission order:
// GameStart, goals, penalties, period transitions, GameEnd.
//
// prev may be nil when nothing is cached for the game; only GameStart can be derived then.
// A nil next derives nothing.
func Derive(prev, next *games.Snapshot, now time.Time) []domainevents.Event {
	if next == nil {
		return nil
	}
	info := domainevents.InfoFrom(next)

	var out []domainevents.Event
	if !prev.Status().Started() && next.Status().Started() {
		out = append(out, domainevents.New(info, domainevents.GameStart{}, now))
	}
	if prev == nil {
		return out
	}

	out = append(out, goals(prev, next, info, now)...)
	out = append(out, penalties(prev, next, info, now)...)

	if next.Period > prev.Period {
		if prev.Period > 0 {
			out = append(out, domainevents.New(info, domainevents.PeriodEnd{Period: prev.Period}, now))
		}
		out = append(out, domainevents.New(info, domainevents.PeriodStart{Period: next.Period}, now))
	}

	if !prev.Played && next.Played {
		out = append(out, domainevents.New(info, domainevents.GameEnd{}, now))
	}
	return out
}

// goals emits one Goal per unit of score increase, home units first. Each event carries the
// scoreline that goal produced.
func goals(prev, next *games.Snapshot, info domainevents.GameInfo, now time.Time) []domainevents.Event {
	var out []domainevents.Event
	home, away := prev.HomeScore, prev.AwayScore
	for home < next.HomeScore {
		home++
		final := home == next.HomeScore
		out = append(out, goalEvent(next, info, next.HomeTeam, home, away, final, now))
	}
	for away < next.AwayScore {
		away++
		final := away == next.AwayScore
		out = append(out, goalEvent(next, info, next.AwayTeam, home, away, final, now))
	}
	return out
}

func goalEvent(next *games.Snapshot, info domainevents.GameInfo, team string, home, away int, final bool, now time.Time) domainevents.Event {
	info.HomeScore, info.AwayScore = home, away
	goal := domainevents.Goal{Team: team}

	rec, ok := next.GoalAt(home, away)
	if (!ok || rec.Team != team) && final {
		rec, ok = next.LastGoalBy(team)
	}
	if ok && rec.Team == team {
		goal.PowerPlay = rec.PowerPlay
		goal.Player = rec.Player
		if rec.Gametime != "" {
			info.Gametime = rec.Gametime
		}
		if rec.Period > 0 {
			info.Period = rec.Period
		}
	}
	return domainevents.New(info, goal, now)
}

// penalties emits one Penalty per unit of penalty-count increase per team, home team first.
func penalties(prev, next *games.Snapshot, info domainevents.GameInfo, now time.Time) []domainevents.Event {
	var out []domainevents.Event
	for _, team := range []string{next.HomeTeam, next.AwayTeam} {
		records := next.PenaltiesFor(team)
		for k := prev.PenaltyCount(team); k < next.PenaltyCount(team); k++ {
			out = append(out, penaltyEvent(records, k, team, info, now))
		}
	}
	return out
}

// penaltyEvent builds the k-th (zero-based) penalty of team. The record is used when the
// feed itemised it; otherwise only the team is known.
func penaltyEvent(records []games.PenaltyRecord, k int, team string, info domainevents.GameInfo, now time.Time) domainevents.Event {
	penalty := domainevents.Penalty{Team: team}
	if k < len(records) {
		rec := records[k]
		penalty.Minutes = rec.Minutes
		penalty.Reason = rec.Reason
		penalty.Player = rec.Player
		if rec.Period > 0 {
			info.Period = rec.Period
		}
		if rec.Gametime != "" {
			info.Gametime = rec.Gametime
		}
	}
	penalty.Sequence = 1 + max(0, k-len(records))
	for i := 0; i < k && i < len(records); i++ {
		if records[i].Period == info.Period {
			penalty.Sequence++
		}
	}
	return domainevents.New(info, penalty, now)
}
