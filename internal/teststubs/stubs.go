package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/domain/players"
)

// StubFeed is a scriptable test double for providers.Feed. Snapshots are keyed by game uuid
// and returned as copies so callers cannot mutate the script.
type StubFeed struct {
	mu           sync.Mutex
	schedule     []games.Game
	scheduleErr  error
	standings    []games.Standing
	standingsErr error
	players      []players.Player
	playersErr   error
	snapshots    map[string]*games.Snapshot
	snapshotErrs map[string]error
	snapCalls    map[string]int

	Calls        atomic.Int32
	PlayersCalls atomic.Int32
	Notify       chan struct{}
}

// SetSchedule replaces the schedule and its error.
func (s *StubFeed) SetSchedule(schedule []games.Game, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = append([]games.Game(nil), schedule...)
	s.scheduleErr = err
}

// SetStandings replaces the standings and their error.
func (s *StubFeed) SetStandings(standings []games.Standing, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.standings = append([]games.Standing(nil), standings...)
	s.standingsErr = err
}

// SetPlayers replaces the players and their error.
func (s *StubFeed) SetPlayers(items []players.Player, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = append([]players.Player(nil), items...)
	s.playersErr = err
}

// SetSnapshot scripts the next snapshot returned for snap.GameUUID and clears any error.
func (s *StubFeed) SetSnapshot(snap *games.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshots == nil {
		s.snapshots = make(map[string]*games.Snapshot)
	}
	s.snapshots[snap.GameUUID] = snap.Clone()
	delete(s.snapshotErrs, snap.GameUUID)
}

// SetSnapshotErr makes snapshot fetches for gameUUID fail with err.
func (s *StubFeed) SetSnapshotErr(gameUUID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshotErrs == nil {
		s.snapshotErrs = make(map[string]error)
	}
	s.snapshotErrs[gameUUID] = err
}

// SnapshotCalls returns how many times gameUUID was fetched.
func (s *StubFeed) SnapshotCalls(gameUUID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapCalls[gameUUID]
}

func (s *StubFeed) called() {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
}

// FetchSchedule returns the configured schedule and error while tracking calls.
func (s *StubFeed) FetchSchedule(context.Context, int) ([]games.Game, error) {
	s.called()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduleErr != nil {
		return nil, s.scheduleErr
	}
	return append([]games.Game(nil), s.schedule...), nil
}

// FetchSnapshot returns a copy of the scripted snapshot, or nil when none is scripted.
func (s *StubFeed) FetchSnapshot(_ context.Context, gameUUID string, _ int) (*games.Snapshot, error) {
	s.called()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapCalls == nil {
		s.snapCalls = make(map[string]int)
	}
	s.snapCalls[gameUUID]++
	if err := s.snapshotErrs[gameUUID]; err != nil {
		return nil, err
	}
	return s.snapshots[gameUUID].Clone(), nil
}

// FetchStandings returns the configured standings and error.
func (s *StubFeed) FetchStandings(context.Context, int) ([]games.Standing, error) {
	s.called()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.standingsErr != nil {
		return nil, s.standingsErr
	}
	return append([]games.Standing(nil), s.standings...), nil
}

// FetchPlayers returns the configured players and error.
func (s *StubFeed) FetchPlayers(context.Context, int) ([]players.Player, error) {
	s.called()
	s.PlayersCalls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playersErr != nil {
		return nil, s.playersErr
	}
	return append([]players.Player(nil), s.players...), nil
}
