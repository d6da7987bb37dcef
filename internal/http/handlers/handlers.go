// Package handlers serves the read surface over the live pipeline and the subscriber write path.
package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"

	"github.com/preston-bernstein/shl-live-service/internal/app/players"
	"github.com/preston-bernstein/shl-live-service/internal/app/schedule"
	"github.com/preston-bernstein/shl-live-service/internal/app/standings"
	"github.com/preston-bernstein/shl-live-service/internal/app/users"
	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/events"
	"github.com/preston-bernstein/shl-live-service/internal/gamestats"
	"github.com/preston-bernstein/shl-live-service/internal/poller"
)

// Poller is the part of the scheduler the HTTP layer reads from or drives.
type Poller interface {
	Live() []games.Game
	Status() poller.Status
	Tick(ctx context.Context) (int, error)
}

// Services groups the stores the handlers read and write.
type Services struct {
	Schedule  *schedule.Service
	Standings *standings.Service
	Stats     *gamestats.Service
	Events    *events.Log
	Players   *players.Service
	Users     *users.Service
}

// Handler wires HTTP routes to the services and the poller.
type Handler struct {
	svc    Services
	poller Poller
	logger *slog.Logger
}

// NewHandler constructs a Handler. A nil poller reports ready and an empty live set.
func NewHandler(svc Services, p Poller, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, poller: p, logger: logger}
}

// Health reports process liveness.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the poller has completed a recent tick.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.poller == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.poller.Status()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]any{"status": "ready", "poller": status}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Live returns the games currently tracked by the poller.
func (h *Handler) Live(w nethttp.ResponseWriter, r *nethttp.Request) {
	live := []games.Game{}
	if h.poller != nil {
		live = append(live, h.poller.Live()...)
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"count": len(live), "games": live}, h.logger)
}
