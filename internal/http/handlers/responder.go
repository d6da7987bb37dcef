package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/shl-live-service/internal/http/middleware"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
)

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

// writeError echoes the request id so clients can quote it back.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	id := middleware.RequestIDFromContext(r.Context())
	if id == "" {
		id = r.Header.Get("X-Request-ID")
	}
	writeJSON(w, status, errorBody{Error: message, RequestID: id}, logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
