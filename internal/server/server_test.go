package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/shl-live-service/internal/config"
	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/metrics"
	"github.com/preston-bernstein/shl-live-service/internal/poller"
	"github.com/preston-bernstein/shl-live-service/internal/testutil"
)

type stubPoller struct {
	mu         sync.Mutex
	startCalls int
	stopCalls  int
	err        error
}

func (p *stubPoller) Start(context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startCalls++
}

func (p *stubPoller) Stop(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopCalls++
	return p.err
}

func (p *stubPoller) Status() poller.Status             { return poller.Status{} }
func (p *stubPoller) Live() []games.Game                { return nil }
func (p *stubPoller) Tick(context.Context) (int, error) { return 0, nil }

func (p *stubPoller) counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.startCalls, p.stopCalls
}

func memoryConfig() config.Config {
	return config.Config{
		Port:     "0",
		Provider: "fixture",
		Season:   2030,
		Store:    config.StoreConfig{Backend: "memory", KeyPrefix: "test"},
		Feed:     config.FeedConfig{RequestsPerMinute: 60000},
		Push:     config.PushConfig{Topic: "se.shl.live"},
		Metrics:  config.MetricsConfig{Enabled: false},
		HTTP:     config.HTTPConfig{CORSOrigins: []string{"*"}},
	}
}

func TestRunStartsPollerAndShutsDown(t *testing.T) {
	httpSrv := &testutil.FakeHTTPServer{ListenErr: http.ErrServerClosed}
	plr := &stubPoller{}
	logger, _ := testutil.NewBufferLogger()
	srv := newServerWithDeps(config.Config{}, logger, httpSrv, plr)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not return after cancel")
	}

	starts, stops := plr.counts()
	if starts != 1 || stops != 1 {
		t.Fatalf("expected poller started and stopped once, got %d/%d", starts, stops)
	}
	if _, shutdowns := httpSrv.Calls(); shutdowns != 1 {
		t.Fatalf("expected http shutdown, got %d", shutdowns)
	}
}

func TestRunStopsWhenListenFails(t *testing.T) {
	httpSrv := &testutil.FakeHTTPServer{ListenErr: errors.New("address in use")}
	plr := &stubPoller{err: errors.New("stop failed")}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, plr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected listen failure to stop the server")
	}
	if _, shutdowns := httpSrv.Calls(); shutdowns != 1 {
		t.Fatalf("expected shutdown after listen failure")
	}
}

func TestGracefulShutdownHonorsTimeout(t *testing.T) {
	orig := shutdownTimeout
	shutdownTimeout = 20 * time.Millisecond
	defer func() { shutdownTimeout = orig }()

	httpSrv := &testutil.FakeHTTPServer{Hold: make(chan struct{})}
	plr := &stubPoller{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, plr)

	start := time.Now()
	srv.gracefulShutdown()
	if time.Since(start) > time.Second {
		t.Fatalf("shutdown should be bounded by the timeout")
	}
	if _, stops := plr.counts(); stops != 1 {
		t.Fatalf("expected poller stopped even when http shutdown times out")
	}
}

func TestNewServesAPI(t *testing.T) {
	srv, err := New(context.Background(), memoryConfig(), nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer srv.app.Close()

	testutil.AssertStatus(t, testutil.Serve(srv.Handler(), http.MethodGet, "/health", nil), http.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil), http.StatusServiceUnavailable)
	testutil.AssertStatus(t, testutil.Serve(srv.Handler(), http.MethodPost, "/admin/tick", nil), http.StatusNotFound)
}

func TestNewMountsAdminWithToken(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTP.AdminToken = "secret"
	srv, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPost, "/admin/tick", nil)
	req.Header.Set("Authorization", "Bearer secret")
	testutil.AssertStatus(t, testutil.ServeRequest(srv.Handler(), req), http.StatusOK)

	// The tick above counts as a success, so the service reports ready.
	testutil.AssertStatus(t, testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil), http.StatusOK)
}

func TestNewFailsOnUnknownBackend(t *testing.T) {
	cfg := memoryConfig()
	cfg.Store.Backend = "cassandra"
	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestBuildMetricsFallsBackOnSetupFailure(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(context.Context, metrics.ExportConfig) (*metrics.Recorder, http.Handler, metrics.Shutdown, error) {
		return nil, nil, nil, errors.New("fail")
	}

	rec, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, nil, nil)
	if rec == nil || srv != nil || stop != nil {
		t.Fatalf("expected bare recorder on setup failure")
	}
}

func TestBuildMetricsServesPrometheusHandler(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(context.Context, metrics.ExportConfig) (*metrics.Recorder, http.Handler, metrics.Shutdown, error) {
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
		return metrics.NewRecorder(), h, func(context.Context) error { return nil }, nil
	}

	rec, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true, Port: "9999"}}, nil, nil)
	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics port, got %s", srv.Addr())
	}
	testutil.AssertStatus(t, testutil.Serve(srv.Handler(), http.MethodGet, "/metrics", nil), http.StatusOK)
}

func TestBuildMetricsUsesInjectedRecorder(t *testing.T) {
	injected := metrics.NewRecorder()
	rec, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, nil, injected)
	if rec != injected || srv != nil || stop != nil {
		t.Fatalf("expected injected recorder to be used as-is")
	}
}
