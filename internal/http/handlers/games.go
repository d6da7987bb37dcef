package handlers

import (
	"log/slog"
	nethttp "net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/domain/teams"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
)

// Games returns the season schedule decorated with the latest scores. An optional team query
// restricts it to games involving that team.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	team, ok := h.teamFilter(w, r)
	if !ok {
		return
	}
	list, err := h.svc.Schedule.Read(r.Context())
	if err != nil {
		logging.Error(logger, "schedule read failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "schedule unavailable", logger)
		return
	}
	out := make([]games.Game, 0, len(list))
	for _, g := range list {
		if team == "" || g.HomeTeam == team || g.AwayTeam == team {
			out = append(out, g)
		}
	}
	logging.Debug(logger, "served schedule", slog.Int(logging.FieldCount, len(out)))
	writeJSON(w, nethttp.StatusOK, map[string]any{"season": h.svc.Schedule.Season(), "games": out}, logger)
}

// Stats returns a game's snapshot. By default the in-memory copy is served; fresh=true reads
// the store.
func (h *Handler) Stats(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	uuid := chi.URLParam(r, "uuid")

	var snap *games.Snapshot
	if r.URL.Query().Get("fresh") != "true" {
		snap = h.svc.Stats.FromCache(uuid)
	}
	if snap == nil {
		var err error
		snap, err = h.svc.Stats.Read(r.Context(), uuid)
		if err != nil {
			logging.Error(logger, "snapshot read failed", err, slog.String(logging.FieldGameUUID, uuid))
			writeError(w, r, nethttp.StatusInternalServerError, "stats unavailable", logger)
			return
		}
	}
	if snap == nil {
		writeError(w, r, nethttp.StatusNotFound, "game not found", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, snap, logger)
}

// Events returns a game's event history in the order it was recorded.
func (h *Handler) Events(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	uuid := chi.URLParam(r, "uuid")
	list, err := h.svc.Events.Events(r.Context(), uuid)
	if err != nil {
		logging.Error(logger, "events read failed", err, slog.String(logging.FieldGameUUID, uuid))
		writeError(w, r, nethttp.StatusInternalServerError, "events unavailable", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"game_uuid": uuid, "events": list}, logger)
}

// Standings returns the stored league table.
func (h *Handler) Standings(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	table, err := h.svc.Standings.Read(r.Context())
	if err != nil {
		logging.Error(logger, "standings read failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "standings unavailable", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"standings": table}, logger)
}

// Players returns the stored roster, optionally for one team.
func (h *Handler) Players(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	team, ok := h.teamFilter(w, r)
	if !ok {
		return
	}
	list, err := h.svc.Players.Players(r.Context(), team)
	if err != nil {
		logging.Error(logger, "players read failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "players unavailable", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"team": team, "players": list}, logger)
}

// teamFilter resolves the team query parameter. An empty parameter means no filter.
func (h *Handler) teamFilter(w nethttp.ResponseWriter, r *nethttp.Request) (string, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("team"))
	if raw == "" {
		return "", true
	}
	team, ok := teams.Resolve(raw)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "unknown team", h.logger)
		return "", false
	}
	return team.Code, true
}
