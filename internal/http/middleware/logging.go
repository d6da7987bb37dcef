package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/metrics"
)

// Logging scopes a logger to each request, then logs and records the response once the
// handler returns. Mount it after RequestID so the id is on the logger.
func Logging(base *slog.Logger, recorder *metrics.Recorder) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			began := time.Now()
			logger := base.With(
				slog.String(logging.FieldRequestID, RequestIDFromContext(r.Context())),
				slog.String(logging.FieldMethod, r.Method),
				slog.String(logging.FieldPath, r.URL.Path),
				slog.String("client_ip", ClientIP(r)),
			)
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			r = r.WithContext(logging.WithLogger(r.Context(), logger))

			next.ServeHTTP(sw, r)

			elapsed := time.Since(began)
			recorder.RecordHTTPRequest(r.Method, routePattern(r), sw.status, elapsed)
			logger.Info("request complete",
				slog.Int(logging.FieldStatusCode, sw.status),
				slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// routePattern labels by the matched chi route so path ids stay out of metric labels.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
