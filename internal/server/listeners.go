package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/shl-live-service/internal/logging"
)

// Listener limits. /admin/tick runs a whole tick inside one request, so the write
// timeout sits above a slow feed round trip.
var (
	shutdownTimeout = 10 * time.Second
	listenerLimits  = struct{ read, write, idle time.Duration }{10 * time.Second, 15 * time.Second, time.Minute}
)

// httpServer is the part of *http.Server the lifecycle code touches.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
	Handler() http.Handler
}

type stdServer struct{ srv *http.Server }

func newNetHTTPServer(addr string, h http.Handler) httpServer {
	return stdServer{&http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  listenerLimits.read,
		WriteTimeout: listenerLimits.write,
		IdleTimeout:  listenerLimits.idle,
	}}
}

func (s stdServer) ListenAndServe() error              { return s.srv.ListenAndServe() }
func (s stdServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
func (s stdServer) Addr() string                       { return s.srv.Addr }
func (s stdServer) Handler() http.Handler              { return s.srv.Handler }

// launchServer serves in a goroutine. onFail runs if serving ends with anything but
// http.ErrServerClosed.
func launchServer(name string, srv httpServer, logger *slog.Logger, onFail func(error)) {
	go func() {
		logging.Info(logger, "listening", slog.String("listener", name), slog.String("addr", srv.Addr()))
		err := srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		logging.Error(logger, "listener stopped", err, slog.String("listener", name))
		if onFail != nil {
			onFail(err)
		}
	}()
}
