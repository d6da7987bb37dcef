package handlers

import (
	"encoding/json"
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	domainusers "github.com/preston-bernstein/shl-live-service/internal/domain/users"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
)

const maxUserBody = 16 << 10

// AddUser creates, replaces or removes a subscriber. A user without a push token or teams is
// removed rather than stored.
func (h *Handler) AddUser(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)

	var u domainusers.User
	dec := json.NewDecoder(nethttp.MaxBytesReader(w, r.Body, maxUserBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&u); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid json body", logger)
		return
	}
	u = u.Normalize()
	if err := u.Validate(); err != nil {
		logging.Warn(logger, "user rejected", slog.String(logging.FieldUserID, u.ID), slog.Any("err", err))
		writeError(w, r, nethttp.StatusBadRequest, "invalid user", logger)
		return
	}

	retained, err := h.svc.Users.AddUser(r.Context(), u)
	if err != nil {
		logging.Error(logger, "user store failed", err, slog.String(logging.FieldUserID, u.ID))
		writeError(w, r, nethttp.StatusInternalServerError, "user store unavailable", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"id": u.ID, "retained": retained}, logger)
}

// User returns a stored subscriber.
func (h *Handler) User(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	id := chi.URLParam(r, "id")
	u, ok, err := h.svc.Users.User(r.Context(), id)
	if err != nil {
		logging.Error(logger, "user read failed", err, slog.String(logging.FieldUserID, id))
		writeError(w, r, nethttp.StatusInternalServerError, "user store unavailable", logger)
		return
	}
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "user not found", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, u, logger)
}
