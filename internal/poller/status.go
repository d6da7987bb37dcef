package poller

import (
	"sync"
	"time"
)

// readyAfterFailures is the streak of failed ticks that flips readiness off.
const readyAfterFailures = 3

// Status is the loop health served on /ready.
type Status struct {
	ConsecutiveFailures int           `json:"consecutive_failures"`
	LastError           string        `json:"last_error,omitempty"`
	LastAttempt         time.Time     `json:"last_attempt"`
	LastSuccess         time.Time     `json:"last_success"`
	LiveGames           int           `json:"live_games"`
	NextDelay           time.Duration `json:"next_delay"`
}

// IsReady needs one clean tick and a failure streak below readyAfterFailures.
func (s Status) IsReady() bool {
	return !s.LastSuccess.IsZero() && s.ConsecutiveFailures < readyAfterFailures
}

type health struct {
	mu sync.RWMutex
	s  Status
}

func (h *health) attempted(at time.Time) {
	h.mu.Lock()
	h.s.LastAttempt = at
	h.mu.Unlock()
}

// finished folds one tick outcome in. Degraded ticks count as failures.
func (h *health) finished(at time.Time, live int, next time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.s.LiveGames = live
	h.s.NextDelay = next
	if err != nil {
		h.s.ConsecutiveFailures++
		h.s.LastError = err.Error()
		return
	}
	h.s.ConsecutiveFailures = 0
	h.s.LastError = ""
	h.s.LastSuccess = at
}

func (h *health) failed(at time.Time, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.s.LastAttempt = at
	h.s.ConsecutiveFailures++
	h.s.LastError = err.Error()
}

func (h *health) snapshot() Status {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.s
}
