// Package http assembles the chi router over the handlers.
package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/preston-bernstein/shl-live-service/internal/http/handlers"
	"github.com/preston-bernstein/shl-live-service/internal/http/middleware"
	"github.com/preston-bernstein/shl-live-service/internal/metrics"
)

// RouterConfig carries the handlers and cross-cutting options for NewRouter.
type RouterConfig struct {
	Handler     *handlers.Handler
	Admin       *handlers.AdminHandler
	CORSOrigins []string
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
}

// NewRouter registers every route on a chi mux wrapped in request logging and CORS.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	}).Handler)

	h := cfg.Handler
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	r.Get("/standings", h.Standings)
	r.Get("/players", h.Players)

	r.Route("/games", func(r chi.Router) {
		r.Get("/", h.Games)
		r.Get("/{uuid}/stats", h.Stats)
		r.Get("/{uuid}/events", h.Events)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.AddUser)
		r.Get("/{id}", h.User)
	})

	if cfg.Admin != nil {
		r.Post("/admin/tick", cfg.Admin.Tick)
	}
	return r
}
