// Package events defines the game events derived from successive snapshots.
//
// An Event pairs the game context shared by every kind (GameInfo) with a kind-specific
// Payload. Payload is a closed set: GameStart, GameEnd, Goal, Penalty, PeriodStart and
// PeriodEnd are the only implementations.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/domain/players"
)

// Type names an event kind.
type Type string

const (
	TypeGameStart   Type = "GameStart"
	TypeGameEnd     Type = "GameEnd"
	TypeGoal        Type = "Goal"
	TypePenalty     Type = "Penalty"
	TypePeriodStart Type = "PeriodStart"
	TypePeriodEnd   Type = "PeriodEnd"
)

// GameInfo is the game context captured when the event was derived.
type GameInfo struct {
	GameUUID  string `json:"game_uuid"`
	HomeTeam  string `json:"home_team_code"`
	AwayTeam  string `json:"away_team_code"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Period    int    `json:"period"`
	Gametime  string `json:"gametime,omitempty"`
}

// InfoFrom captures the game context of a snapshot.
func InfoFrom(s *games.Snapshot) GameInfo {
	return GameInfo{
		GameUUID:  s.GameUUID,
		HomeTeam:  s.HomeTeam,
		AwayTeam:  s.AwayTeam,
		HomeScore: s.HomeScore,
		AwayScore: s.AwayScore,
		Period:    s.Period,
		Gametime:  s.Gametime,
	}
}

// ScoreString renders the captured score as "HOME h - a AWAY".
func (i GameInfo) ScoreString() string {
	return games.ScoreString(i.HomeTeam, i.HomeScore, i.AwayScore, i.AwayTeam)
}

// Payload is the kind-specific part of an Event.
type Payload interface {
	Kind() Type
	identity(info GameInfo) string
}

// GameStart is emitted once when a game leaves the Coming state.
type GameStart struct{}

// GameEnd is emitted once when a game is marked played.
type GameEnd struct{}

// Goal is emitted once per unit of score increase.
type Goal struct {
	Team      string          `json:"team"`
	PowerPlay bool            `json:"power_play"`
	Player    *players.Player `json:"player,omitempty"`
}

// Penalty is emitted once per unit of penalty-count increase.
type Penalty struct {
	Team     string          `json:"team"`
	Minutes  int             `json:"minutes,omitempty"`
	Reason   string          `json:"reason,omitempty"`
	Player   *players.Player `json:"player,omitempty"`
	Sequence int             `json:"sequence"` // per team and period, starting at 1
}

// PeriodStart is emitted when play enters a new period.
type PeriodStart struct {
	Period int `json:"period"`
}

// PeriodEnd is emitted when play leaves a period.
type PeriodEnd struct {
	Period int `json:"period"`
}

func (GameStart) Kind() Type   { return TypeGameStart }
func (GameEnd) Kind() Type     { return TypeGameEnd }
func (Goal) Kind() Type        { return TypeGoal }
func (Penalty) Kind() Type     { return TypePenalty }
func (PeriodStart) Kind() Type { return TypePeriodStart }
func (PeriodEnd) Kind() Type   { return TypePeriodEnd }

// At most one start and one end per game.
func (GameStart) identity(GameInfo) string { return string(TypeGameStart) }
func (GameEnd) identity(GameInfo) string   { return string(TypeGameEnd) }

// A repeated scoreline is the same goal.
func (Goal) identity(info GameInfo) string { return string(TypeGoal) + info.ScoreString() }

func (p PeriodStart) identity(GameInfo) string { return fmt.Sprintf("%s%d", TypePeriodStart, p.Period) }
func (p PeriodEnd) identity(GameInfo) string   { return fmt.Sprintf("%s%d", TypePeriodEnd, p.Period) }

func (p Penalty) identity(info GameInfo) string {
	player := ""
	if p.Player != nil {
		player = p.Player.FamilyName + "#" + fmt.Sprint(p.Player.Jersey)
	}
	key := fmt.Sprintf("%s|%d|%s|%s|%s|%d|%d", info.GameUUID, info.Period, p.Team, player, p.Reason, p.Minutes, p.Sequence)
	return fmt.Sprintf("%s-%016x", TypePenalty, xxhash.Sum64String(key))
}

// Event is one derived game event. Events are immutable once created.
type Event struct {
	ID        string
	Info      GameInfo
	Payload   Payload
	Timestamp time.Time
}

// New builds an event and computes its dedup identity.
func New(info GameInfo, payload Payload, at time.Time) Event {
	return Event{
		ID:        payload.identity(info),
		Info:      info,
		Payload:   payload,
		Timestamp: at,
	}
}

// Type returns the event kind.
func (e Event) Type() Type {
	if e.Payload == nil {
		return ""
	}
	return e.Payload.Kind()
}

// Teams returns the team codes the event concerns: the acting team for goals and penalties,
// both teams otherwise.
func (e Event) Teams() []string {
	switch p := e.Payload.(type) {
	case Goal:
		return []string{p.Team}
	case Penalty:
		return []string{p.Team}
	default:
		return []string{e.Info.HomeTeam, e.Info.AwayTeam}
	}
}

// ShouldNotify reports whether the event is pushed to subscribers. Period transitions are
// recorded in the log only.
func (e Event) ShouldNotify() bool {
	switch e.Payload.(type) {
	case GameStart, GameEnd, Goal, Penalty:
		return true
	default:
		return false
	}
}

// String renders a compact description used in logs.
func (e Event) String() string {
	return fmt.Sprintf("%s %s [%s]", e.Type(), e.Info.ScoreString(), e.ID)
}

type wireEvent struct {
	ID          string       `json:"id"`
	Type        Type         `json:"type"`
	Info        GameInfo     `json:"info"`
	Goal        *Goal        `json:"goal,omitempty"`
	Penalty     *Penalty     `json:"penalty,omitempty"`
	PeriodStart *PeriodStart `json:"period_start,omitempty"`
	PeriodEnd   *PeriodEnd   `json:"period_end,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

// MarshalJSON encodes the event with an explicit type tag.
func (e Event) MarshalJSON() ([]byte, error) {
	w := wireEvent{ID: e.ID, Type: e.Type(), Info: e.Info, Timestamp: e.Timestamp}
	switch p := e.Payload.(type) {
	case Goal:
		w.Goal = &p
	case Penalty:
		w.Penalty = &p
	case PeriodStart:
		w.PeriodStart = &p
	case PeriodEnd:
		w.PeriodEnd = &p
	case GameStart, GameEnd:
	default:
		return nil, fmt.Errorf("events: unknown payload %T", e.Payload)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes an event written by MarshalJSON.
func (e *Event) UnmarshalJSON(data []byte) error {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var payload Payload
	switch w.Type {
	case TypeGameStart:
		payload = GameStart{}
	case TypeGameEnd:
		payload = GameEnd{}
	case TypeGoal:
		if w.Goal == nil {
			return fmt.Errorf("events: goal payload missing")
		}
		payload = *w.Goal
	case TypePenalty:
		if w.Penalty == nil {
			return fmt.Errorf("events: penalty payload missing")
		}
		payload = *w.Penalty
	case TypePeriodStart:
		if w.PeriodStart == nil {
			return fmt.Errorf("events: period_start payload missing")
		}
		payload = *w.PeriodStart
	case TypePeriodEnd:
		if w.PeriodEnd == nil {
			return fmt.Errorf("events: period_end payload missing")
		}
		payload = *w.PeriodEnd
	default:
		return fmt.Errorf("events: unknown type %q", w.Type)
	}
	*e = Event{ID: w.ID, Info: w.Info, Payload: payload, Timestamp: w.Timestamp}
	return nil
}
