// Package server assembles the live pipeline, the HTTP API and telemetry into one process.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/shl-live-service/internal/config"
	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	httpapi "github.com/preston-bernstein/shl-live-service/internal/http"
	"github.com/preston-bernstein/shl-live-service/internal/http/handlers"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/metrics"
	"github.com/preston-bernstein/shl-live-service/internal/poller"
)

var metricsSetup = metrics.Setup

// Poller defines the poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
	Live() []games.Game
	Tick(ctx context.Context) (int, error)
}

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	app           *App
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New opens the store and wires the poller and HTTP API.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, nil)
	app, err := NewApp(ctx, cfg, logger, recorder)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(ctx)
		}
		return nil, err
	}
	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		app:           app,
		httpServer:    buildHTTPServer(cfg, app.Services, app.Poller, logger, recorder),
		metricsServer: metricsSrv,
		poller:        app.Poller,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, svc handlers.Services, plr Poller, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var admin *handlers.AdminHandler
	if cfg.HTTP.AdminToken != "" {
		admin = handlers.NewAdminHandler(plr, cfg.HTTP.AdminToken, logger)
	}
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Handler:     handlers.NewHandler(svc, plr, logger),
		Admin:       admin,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Logger:      logger,
		Metrics:     recorder,
	})
	return newNetHTTPServer(":"+cfg.Port, router)
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	launchServer("http", s.httpServer, s.logger, func(error) {
		if stop != nil {
			stop()
		}
	})
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")
	s.gracefulShutdown()
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// gracefulShutdown stops the poller before the store closes so no tick is mid-write.
func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}
	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}
	if err := s.app.Close(); err != nil {
		logging.Warn(s.logger, "store close failed", slog.Any("err", err))
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", slog.Any("err", err))
		}
	}
	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", slog.Any("err", err))
		}
	}
	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), metrics.ExportConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Metrics.OTLPEndpoint,
		OTLPInsecure: cfg.Metrics.OTLPInsecure,
		PushInterval: cfg.Metrics.PushInterval,
	})
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", slog.Any("err", err))
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = newNetHTTPServer(":"+cfg.Metrics.Port, mux)
	}
	return rec, metricsSrv, shutdown
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
