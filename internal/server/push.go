package server

import (
	"log/slog"

	"github.com/preston-bernstein/shl-live-service/internal/config"
	"github.com/preston-bernstein/shl-live-service/internal/feedsocket"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/notify"
)

var newAPNSTransport = func(cfg notify.APNSConfig) (notify.Transport, error) {
	return notify.NewAPNSTransport(cfg)
}

// buildTransport returns the APNs transport when credentials are configured. Without them, or
// when the key cannot be loaded, notifications are only logged.
func buildTransport(cfg config.PushConfig, logger *slog.Logger) notify.Transport {
	if !cfg.Enabled() {
		logging.Info(logger, "push credentials not configured, logging notifications")
		return notify.LogTransport{Logger: logger}
	}
	transport, err := newAPNSTransport(notify.APNSConfig{
		KeyPath:    cfg.KeyPath,
		KeyID:      cfg.KeyID,
		TeamID:     cfg.TeamID,
		Production: cfg.Production,
	})
	if err != nil {
		logging.Error(logger, "apns transport unavailable, logging notifications", err)
		return notify.LogTransport{Logger: logger}
	}
	logging.Info(logger, "apns transport ready", slog.Bool("production", cfg.Production))
	return transport
}

func buildSession(cfg config.FeedConfig, logger *slog.Logger) feedsocket.Session {
	if cfg.SocketURL == "" {
		return feedsocket.Noop{}
	}
	return feedsocket.NewWebsocketSession(cfg.SocketURL, nil, logger)
}
