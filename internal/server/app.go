package server

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/preston-bernstein/shl-live-service/internal/app/players"
	"github.com/preston-bernstein/shl-live-service/internal/app/schedule"
	"github.com/preston-bernstein/shl-live-service/internal/app/standings"
	"github.com/preston-bernstein/shl-live-service/internal/app/users"
	"github.com/preston-bernstein/shl-live-service/internal/config"
	"github.com/preston-bernstein/shl-live-service/internal/events"
	"github.com/preston-bernstein/shl-live-service/internal/gamestats"
	"github.com/preston-bernstein/shl-live-service/internal/http/handlers"
	"github.com/preston-bernstein/shl-live-service/internal/metrics"
	"github.com/preston-bernstein/shl-live-service/internal/notify"
	"github.com/preston-bernstein/shl-live-service/internal/poller"
	"github.com/preston-bernstein/shl-live-service/internal/providers"
	"github.com/preston-bernstein/shl-live-service/internal/store"
)

// App is the assembled pipeline: stores, feed, dispatcher and poller. The server and the CLI
// both run on top of it.
type App struct {
	Services handlers.Services
	Poller   *poller.Poller
	Feed     providers.Feed
	Backend  store.Backend

	closer io.Closer
}

// NewApp opens the configured store and wires every service over it.
func NewApp(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*App, error) {
	backend, closer, err := openBackend(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}
	feed := newFeedFactory(logger, recorder).build(cfg)
	return newAppWith(cfg, backend, closer, feed, buildTransport(cfg.Push, logger), logger, recorder), nil
}

func newAppWith(cfg config.Config, backend store.Backend, closer io.Closer, feed providers.Feed, transport notify.Transport, logger *slog.Logger, recorder *metrics.Recorder) *App {
	stats := gamestats.NewService(feed, backend, logger)
	svc := handlers.Services{
		Schedule:  schedule.NewService(feed, backend, cfg.Season, stats, logger),
		Standings: standings.NewService(feed, backend, cfg.Season, logger),
		Stats:     stats,
		Events:    events.NewLog(backend, logger),
		Players:   players.NewService(feed, backend, cfg.Season, logger),
		Users:     users.NewService(backend, logger),
	}
	dispatcher := notify.NewDispatcher(transport, notify.Options{
		Topic: cfg.Push.Topic,
		Muted: cfg.Push.Muted,
	}, logger, recorder)

	plr := poller.New(poller.Deps{
		Standings:  svc.Standings,
		Schedule:   svc.Schedule,
		Stats:      svc.Stats,
		Events:     svc.Events,
		Users:      svc.Users,
		Players:    svc.Players,
		Dispatcher: dispatcher,
		Session:    buildSession(cfg.Feed, logger),
	}, poller.Config{
		LiveWindow:    cfg.Scheduler.LiveWindow,
		LiveInterval:  cfg.Scheduler.LiveInterval,
		IdleInterval:  cfg.Scheduler.IdleInterval,
		ErrorInterval: cfg.Scheduler.ErrorInterval,
	}, logger, recorder)

	if closer == nil {
		closer = nopCloser{}
	}
	return &App{Services: svc, Poller: plr, Feed: feed, Backend: backend, closer: closer}
}

// Close releases the store connection.
func (a *App) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	if err := a.closer.Close(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
