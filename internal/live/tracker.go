// Package live tracks the games currently being polled.
package live

import (
	"sync"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
)

// Tracker is an insertion-ordered, duplicate-free set of games keyed by uuid.
// The poller is the only writer; readers receive copies.
type Tracker struct {
	mu    sync.RWMutex
	games []games.Game
	index map[string]int
}

// NewTracker constructs an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{index: make(map[string]int)}
}

// Add appends every candidate whose uuid is not tracked yet and returns the games actually
// added, in candidate order.
func (t *Tracker) Add(candidates []games.Game) []games.Game {
	t.mu.Lock()
	defer t.mu.Unlock()

	var added []games.Game
	for _, g := range candidates {
		if g.UUID == "" {
			continue
		}
		if _, ok := t.index[g.UUID]; ok {
			continue
		}
		t.index[g.UUID] = len(t.games)
		t.games = append(t.games, g)
		added = append(added, g)
	}
	return added
}

// Remove stops tracking uuid. It reports whether the game was tracked.
func (t *Tracker) Remove(uuid string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.index[uuid]
	if !ok {
		return false
	}
	t.games = append(t.games[:i], t.games[i+1:]...)
	delete(t.index, uuid)
	for j := i; j < len(t.games); j++ {
		t.index[t.games[j].UUID] = j
	}
	return true
}

// Current returns a copy of the tracked games in insertion order.
func (t *Tracker) Current() []games.Game {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]games.Game, len(t.games))
	copy(out, t.games)
	return out
}

// Contains reports whether uuid is tracked.
func (t *Tracker) Contains(uuid string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.index[uuid]
	return ok
}

// Len returns the number of tracked games.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.games)
}
