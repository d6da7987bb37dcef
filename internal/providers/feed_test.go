package providers

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/domain/players"
)

// flakeyFeed fails the first failures calls of every method with err.
type flakeyFeed struct {
	failures int32
	err      error
	calls    atomic.Int32
}

func (f *flakeyFeed) fail() error {
	n := f.calls.Add(1)
	if n <= f.failures {
		if f.err != nil {
			return f.err
		}
		return errors.New("boom")
	}
	return nil
}

func (f *flakeyFeed) FetchSchedule(context.Context, int) ([]games.Game, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return []games.Game{{UUID: "ok"}}, nil
}

func (f *flakeyFeed) FetchSnapshot(_ context.Context, uuid string, id int) (*games.Snapshot, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return &games.Snapshot{GameUUID: uuid, GameID: id}, nil
}

func (f *flakeyFeed) FetchStandings(context.Context, int) ([]games.Standing, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return []games.Standing{{Team: "LHF"}}, nil
}

func (f *flakeyFeed) FetchPlayers(context.Context, int) ([]players.Player, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return []players.Player{{FamilyName: "Omark"}}, nil
}

var _ Feed = (*flakeyFeed)(nil)
