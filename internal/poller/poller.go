// Package poller drives the live loop: refresh the schedule, track live games, turn their
// snapshots into events and notify subscribers.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/shl-live-service/internal/app/players"
	"github.com/preston-bernstein/shl-live-service/internal/app/schedule"
	"github.com/preston-bernstein/shl-live-service/internal/app/standings"
	"github.com/preston-bernstein/shl-live-service/internal/app/users"
	domainevents "github.com/preston-bernstein/shl-live-service/internal/domain/events"
	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	domainusers "github.com/preston-bernstein/shl-live-service/internal/domain/users"
	"github.com/preston-bernstein/shl-live-service/internal/events"
	"github.com/preston-bernstein/shl-live-service/internal/feedsocket"
	"github.com/preston-bernstein/shl-live-service/internal/gamestats"
	"github.com/preston-bernstein/shl-live-service/internal/live"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/metrics"
	"github.com/preston-bernstein/shl-live-service/internal/notify"
	"github.com/preston-bernstein/shl-live-service/internal/providers"
)

// ErrDegraded marks a tick that ran to completion on cached data because the feed failed.
var ErrDegraded = errors.New("tick degraded")

const (
	defaultLiveWindow    = 5 * time.Minute
	defaultLiveInterval  = 3 * time.Second
	defaultIdleInterval  = 60 * time.Second
	defaultErrorInterval = 60 * time.Second
)

// Config controls the cadence of the loop.
type Config struct {
	LiveWindow    time.Duration
	LiveInterval  time.Duration
	IdleInterval  time.Duration
	ErrorInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.LiveWindow <= 0 {
		c.LiveWindow = defaultLiveWindow
	}
	if c.LiveInterval <= 0 {
		c.LiveInterval = defaultLiveInterval
	}
	if c.IdleInterval <= 0 {
		c.IdleInterval = defaultIdleInterval
	}
	if c.ErrorInterval <= 0 {
		c.ErrorInterval = defaultErrorInterval
	}
	return c
}

// Deps are the collaborators of one poller. Players and Session are optional.
type Deps struct {
	Standings  *standings.Service
	Schedule   *schedule.Service
	Stats      *gamestats.Service
	Events     *events.Log
	Users      *users.Service
	Players    *players.Service
	Dispatcher *notify.Dispatcher
	Session    feedsocket.Session
}

// Poller runs ticks back to back, re-arming itself after each one.
type Poller struct {
	deps    Deps
	cfg     Config
	tracker *live.Tracker
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time

	tickMu      sync.Mutex
	sessionOpen bool

	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	health health
}

// New constructs a Poller. The live set is owned by the poller; see Live.
func New(deps Deps, cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Poller {
	if deps.Session == nil {
		deps.Session = feedsocket.Noop{}
	}
	return &Poller{
		deps:    deps,
		cfg:     cfg.withDefaults(),
		tracker: live.NewTracker(),
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Live returns a copy of the games currently tracked.
func (p *Poller) Live() []games.Game {
	return p.tracker.Current()
}

// Start runs ticks until the context is cancelled or Stop is called. The first tick runs
// immediately.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	go func() {
		defer close(p.stopped)
		logging.Info(p.logger, "poller started")

		timer := time.NewTimer(0)
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				p.shutdown()
				return
			case <-p.done:
				p.shutdown()
				return
			case <-timer.C:
				timer.Reset(p.runTick(ctx))
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight tick to finish or ctx to expire.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
	})
	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		return nil
	}
	select {
	case <-p.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Poller) shutdown() {
	p.tickMu.Lock()
	defer p.tickMu.Unlock()
	if p.sessionOpen {
		if err := p.deps.Session.Close(); err != nil {
			logging.Warn(p.logger, "feed socket close failed", slog.Any("err", err))
		}
		p.sessionOpen = false
	}
	logging.Info(p.logger, "poller stopped")
}

// runTick runs one tick and returns the delay before the next. A panicking tick is logged
// and treated as errored so the loop keeps going.
func (p *Poller) runTick(ctx context.Context) (delay time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("tick panic: %v", r)
			logging.Error(p.logger, "poller tick panicked", err)
			p.health.failed(p.now(), err)
			delay = p.cfg.ErrorInterval
		}
	}()
	size, err := p.Tick(ctx)
	return p.nextDelay(size, err)
}

func (p *Poller) nextDelay(size int, err error) time.Duration {
	switch {
	case err != nil:
		return p.cfg.ErrorInterval
	case size > 0:
		return p.cfg.LiveInterval
	default:
		return p.cfg.IdleInterval
	}
}

// Tick runs one polling iteration and returns the number of games still tracked.
//
// Feed failures do not stop the tick: cached data is used and the returned error wraps
// ErrDegraded. Any other error is a store failure that aborted the tick part-way.
func (p *Poller) Tick(ctx context.Context) (int, error) {
	p.tickMu.Lock()
	defer p.tickMu.Unlock()

	start := p.now()
	p.health.attempted(start)

	err := p.tick(ctx)
	size := p.tracker.Len()
	duration := p.now().Sub(start)
	delay := p.nextDelay(size, err)
	p.metrics.RecordTick(duration, size, err)

	attrs := []any{
		slog.Int(logging.FieldLiveGames, size),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
		slog.Duration(logging.FieldDelay, delay),
	}
	p.health.finished(start, size, delay, err)
	switch {
	case err == nil:
		logging.Debug(p.logger, "poller tick", attrs...)
	case errors.Is(err, ErrDegraded):
		logging.Warn(p.logger, "poller tick degraded", append(attrs, slog.Any("err", err))...)
	default:
		logging.Error(p.logger, "poller tick failed", err, attrs...)
	}
	return size, err
}

func (p *Poller) tick(ctx context.Context) error {
	var upstream []error
	degrade := func(err error) error {
		if providers.IsUpstream(err) {
			upstream = append(upstream, err)
			return nil
		}
		return err
	}

	if _, err := p.deps.Standings.Update(ctx); err != nil {
		if err := degrade(err); err != nil {
			return err
		}
	}
	list, err := p.deps.Schedule.Update(ctx)
	if err != nil {
		if err := degrade(err); err != nil {
			return err
		}
	}

	now := p.now()
	if added := p.tracker.Add(schedule.LiveGames(list, now, p.cfg.LiveWindow)); len(added) > 0 {
		p.join(ctx, added)
	}

	subs := &subscribers{load: p.deps.Users.Users}
	for _, g := range p.tracker.Current() {
		if err := p.processGame(ctx, g, subs, now); err != nil {
			if err := degrade(err); err != nil {
				return err
			}
		}
	}

	if len(upstream) > 0 {
		return fmt.Errorf("%w: %w", ErrDegraded, errors.Join(upstream...))
	}
	return nil
}

// join opens the feed socket and subscribes newly tracked games to it.
func (p *Poller) join(ctx context.Context, added []games.Game) {
	if !p.sessionOpen {
		if err := p.deps.Session.Open(ctx); err != nil {
			logging.Warn(p.logger, "feed socket open failed", slog.Any("err", err))
		} else {
			p.sessionOpen = true
		}
	}
	for _, g := range added {
		logging.Info(p.logger, "game is live",
			slog.String(logging.FieldGameUUID, g.UUID),
			slog.String("game", g.String()),
		)
		if p.sessionOpen {
			if err := p.deps.Session.Join(ctx, g.UUID); err != nil {
				logging.Warn(p.logger, "feed socket join failed",
					slog.String(logging.FieldGameUUID, g.UUID),
					slog.Any("err", err),
				)
			}
		}
	}
}

// load primes the cached snapshot and event log of a tracked game. It is a no-op once both are cached.
func (p *Poller) load(ctx context.Context, uuid string) error {
	if err := p.deps.Stats.Prime(ctx, uuid); err != nil {
		return fmt.Errorf("prime snapshot %s: %w", uuid, err)
	}
	if err := p.deps.Events.Prime(ctx, uuid); err != nil {
		return fmt.Errorf("prime events %s: %w", uuid, err)
	}
	return nil
}

func (p *Poller) processGame(ctx context.Context, g games.Game, subs *subscribers, now time.Time) error {
	if err := p.load(ctx, g.UUID); err != nil {
		return err
	}
	prev := p.deps.Stats.FromCache(g.UUID)
	next, result, err := p.deps.Stats.UpdateGame(ctx, g.UUID, g.ID)
	if err != nil {
		return err
	}

	for _, ev := range events.Derive(prev, next, now) {
		if p.deps.Events.IsDuplicate(ev) {
			continue
		}
		if err := p.deps.Events.Store(ctx, g.UUID, ev); err != nil {
			return err
		}
		p.metrics.RecordEvent(string(ev.Type()))
		if err := p.notify(ctx, ev, subs); err != nil {
			return err
		}
	}

	if next != nil && next.Played {
		if err := p.evict(ctx, g); err != nil {
			return err
		}
	}
	if result == gamestats.Failed {
		return providers.Upstream("feed", "snapshot "+g.UUID, providers.ErrProviderUnavailable)
	}
	return nil
}

func (p *Poller) notify(ctx context.Context, ev domainevents.Event, subs *subscribers) error {
	if !ev.ShouldNotify() || p.deps.Dispatcher == nil {
		return nil
	}
	list, err := subs.get(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	p.deps.Dispatcher.Notify(ctx, ev, list)
	return nil
}

// evict stops tracking a finished game and runs the game-end work.
func (p *Poller) evict(ctx context.Context, g games.Game) error {
	p.tracker.Remove(g.UUID)
	logging.Info(p.logger, "game ended",
		slog.String(logging.FieldGameUUID, g.UUID),
		slog.Int(logging.FieldLiveGames, p.tracker.Len()),
	)
	if p.tracker.Len() == 0 && p.sessionOpen {
		if err := p.deps.Session.Close(); err != nil {
			logging.Warn(p.logger, "feed socket close failed", slog.Any("err", err))
		}
		p.sessionOpen = false
	}
	if p.deps.Players == nil {
		return nil
	}
	return p.deps.Players.Update(ctx)
}

// subscribers loads the user list at most once per tick.
type subscribers struct {
	load   func(context.Context) ([]domainusers.User, error)
	loaded bool
	list   []domainusers.User
}

func (s *subscribers) get(ctx context.Context) ([]domainusers.User, error) {
	if s.loaded {
		return s.list, nil
	}
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.list, s.loaded = list, true
	return list, nil
}

// Status returns a copy of the loop's recent health.
func (p *Poller) Status() Status {
	return p.health.snapshot()
}
