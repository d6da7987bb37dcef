package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/shl-live-service/internal/app/players"
	"github.com/preston-bernstein/shl-live-service/internal/app/schedule"
	"github.com/preston-bernstein/shl-live-service/internal/app/standings"
	"github.com/preston-bernstein/shl-live-service/internal/app/users"
	"github.com/preston-bernstein/shl-live-service/internal/events"
	"github.com/preston-bernstein/shl-live-service/internal/gamestats"
	"github.com/preston-bernstein/shl-live-service/internal/http/handlers"
	"github.com/preston-bernstein/shl-live-service/internal/metrics"
	"github.com/preston-bernstein/shl-live-service/internal/store"
	"github.com/preston-bernstein/shl-live-service/internal/teststubs"
	"github.com/preston-bernstein/shl-live-service/internal/testutil"
)

func newRouter(t *testing.T, admin *handlers.AdminHandler, rec *metrics.Recorder) http.Handler {
	t.Helper()
	feed := &teststubs.StubFeed{}
	backend := store.NewMemoryBackend()
	stats := gamestats.NewService(feed, backend, nil)
	h := handlers.NewHandler(handlers.Services{
		Schedule:  schedule.NewService(feed, backend, 2030, stats, nil),
		Standings: standings.NewService(feed, backend, 2030, nil),
		Stats:     stats,
		Events:    events.NewLog(backend, nil),
		Players:   players.NewService(feed, backend, 2030, nil),
		Users:     users.NewService(backend, nil),
	}, nil, nil)
	return NewRouter(RouterConfig{
		Handler:     h,
		Admin:       admin,
		CORSOrigins: []string{"https://app.example"},
		Metrics:     rec,
	})
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newRouter(t, nil, nil)

	cases := map[string]int{
		"/health":          http.StatusOK,
		"/ready":           http.StatusOK,
		"/live":            http.StatusOK,
		"/games":           http.StatusOK,
		"/games/g1/stats":  http.StatusNotFound,
		"/games/g1/events": http.StatusOK,
		"/standings":       http.StatusOK,
		"/players":         http.StatusOK,
		"/users/nobody":    http.StatusNotFound,
		"/does-not-exist":  http.StatusNotFound,
	}
	for path, expected := range cases {
		rr := testutil.Serve(router, http.MethodGet, path, nil)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}
}

func TestRouterUserWriteRoundTrip(t *testing.T) {
	router := newRouter(t, nil, nil)
	rr := testutil.Serve(router, http.MethodPost, "/users",
		strings.NewReader(`{"id":"u1","teams":["LHF"],"apn_token":"abcdef"}`))
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/users/u1", nil), http.StatusOK)
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := newRouter(t, nil, nil)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodPost, "/games", nil), http.StatusMethodNotAllowed)
}

func TestRouterAdminRouteOnlyWhenConfigured(t *testing.T) {
	testutil.AssertStatus(t, testutil.Serve(newRouter(t, nil, nil), http.MethodPost, "/admin/tick", nil), http.StatusNotFound)

	router := newRouter(t, handlers.NewAdminHandler(nil, "secret", nil), nil)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodPost, "/admin/tick", nil), http.StatusUnauthorized)
}

func TestRouterCORSPreflight(t *testing.T) {
	router := newRouter(t, nil, nil)
	req := httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := testutil.ServeRequest(router, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}
}

func TestRouterSetsRequestID(t *testing.T) {
	router := newRouter(t, nil, metrics.NewRecorder())
	rr := testutil.Serve(router, http.MethodGet, "/games/g1/events", nil)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header from middleware")
	}
}
