package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/preston-bernstein/shl-live-service/internal/http/middleware"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/poller"
)

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	poller Poller
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables every admin route.
func NewAdminHandler(p Poller, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{poller: p, token: token, logger: logger}
}

// Tick runs one poller tick immediately. A degraded tick is still reported as 200 since it
// completed; a tick aborted by a store failure is a 500.
func (h *AdminHandler) Tick(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", middleware.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.poller == nil {
		writeError(w, r, http.StatusServiceUnavailable, "poller not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	size, err := h.poller.Tick(r.Context())
	resp := map[string]any{"status": "ok", "live_games": size}
	switch {
	case err == nil:
	case errors.Is(err, poller.ErrDegraded):
		resp["status"] = "degraded"
		resp["error"] = err.Error()
	default:
		logging.Error(logger, "admin tick failed", err)
		writeError(w, r, http.StatusInternalServerError, "tick failed", logger)
		return
	}
	logging.Info(logger, "admin tick", slog.Int(logging.FieldLiveGames, size), slog.Any("err", err))
	writeJSON(w, http.StatusOK, resp, logger)
}

// AdminTokenFromEnv reads ADMIN_TOKEN (optional).
func AdminTokenFromEnv() string {
	return os.Getenv("ADMIN_TOKEN")
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
