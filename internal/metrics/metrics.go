package metrics

import (
	"sync"
	"time"
)

// FeedStats is a copy of the counters kept for one named feed.
type FeedStats struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

// TickStats summarises the poller ticks seen so far.
type TickStats struct {
	Total       int
	Errored     int
	LiveGames   int
	LastLatency time.Duration
}

// Recorder keeps in-process counters for feed calls, poller ticks, stored events and
// notification outcomes. When built by Setup it also forwards each observation to
// OpenTelemetry. All methods are safe on a nil *Recorder.
type Recorder struct {
	mu            sync.Mutex
	feeds         map[string]*FeedStats
	ticks         TickStats
	events        map[string]int
	notifications map[string]int
	inst          *instruments
}

// NewRecorder returns a Recorder that only counts in memory.
func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(inst *instruments) *Recorder {
	return &Recorder{
		feeds:         make(map[string]*FeedStats),
		events:        make(map[string]int),
		notifications: make(map[string]int),
		inst:          inst,
	}
}

func (r *Recorder) feed(name string) *FeedStats {
	fs, ok := r.feeds[name]
	if !ok {
		fs = &FeedStats{}
		r.feeds[name] = fs
	}
	return fs
}

// RecordProviderAttempt counts one call against the named feed.
func (r *Recorder) RecordProviderAttempt(feed string, d time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	fs := r.feed(feed)
	fs.Calls++
	fs.LastCallLatency = d
	if err != nil {
		fs.Errors++
	}
	r.mu.Unlock()
	r.inst.feedCall(feed, d, err)
}

// RecordRateLimit counts a rate-limited feed response. A zero retryAfter keeps the
// previously seen value.
func (r *Recorder) RecordRateLimit(feed string, retryAfter time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	fs := r.feed(feed)
	fs.RateLimitHits++
	if retryAfter > 0 {
		fs.LastRetryAfter = retryAfter
	}
	r.mu.Unlock()
	r.inst.feedRateLimited(feed, retryAfter)
}

// RecordHTTPRequest forwards one served request. It is export-only.
func (r *Recorder) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.inst.httpRequest(method, route, status, d)
}

// RecordTick counts one poller tick and the live-set size it ended with.
func (r *Recorder) RecordTick(d time.Duration, liveGames int, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ticks.Total++
	r.ticks.LiveGames = liveGames
	r.ticks.LastLatency = d
	if err != nil {
		r.ticks.Errored++
	}
	r.mu.Unlock()
	r.inst.tick(d, liveGames, err)
}

// RecordEvent counts a stored game event by type.
func (r *Recorder) RecordEvent(eventType string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.events[eventType]++
	r.mu.Unlock()
	r.inst.gameEvent(eventType)
}

// RecordNotification counts one per-user notification outcome.
func (r *Recorder) RecordNotification(outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.notifications[outcome]++
	r.mu.Unlock()
	r.inst.notification(outcome)
}

// Snapshot copies the counters for one feed.
func (r *Recorder) Snapshot(feed string) FeedStats {
	if r == nil {
		return FeedStats{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if fs, ok := r.feeds[feed]; ok {
		return *fs
	}
	return FeedStats{}
}

func (r *Recorder) ProviderCalls(feed string) int            { return r.Snapshot(feed).Calls }
func (r *Recorder) ProviderErrors(feed string) int           { return r.Snapshot(feed).Errors }
func (r *Recorder) RateLimitHits(feed string) int            { return r.Snapshot(feed).RateLimitHits }
func (r *Recorder) LastRetryAfter(feed string) time.Duration { return r.Snapshot(feed).LastRetryAfter }
func (r *Recorder) LastCallLatency(feed string) time.Duration { return r.Snapshot(feed).LastCallLatency }

// TickStats copies the tick counters.
func (r *Recorder) TickStats() TickStats {
	if r == nil {
		return TickStats{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks
}

// Ticks returns the total and errored tick counts.
func (r *Recorder) Ticks() (total, errored int) {
	s := r.TickStats()
	return s.Total, s.Errored
}

// LiveGames returns the live-set size reported by the last tick.
func (r *Recorder) LiveGames() int {
	return r.TickStats().LiveGames
}

// Events returns how many events of eventType were recorded.
func (r *Recorder) Events(eventType string) int {
	return r.count(func() int { return r.events[eventType] })
}

// Notifications returns how many notifications ended with outcome.
func (r *Recorder) Notifications(outcome string) int {
	return r.count(func() int { return r.notifications[outcome] })
}

func (r *Recorder) count(read func() int) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return read()
}
