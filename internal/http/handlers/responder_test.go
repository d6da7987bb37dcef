package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/testutil"
)

func TestWriteErrorBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/games", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rr := httptest.NewRecorder()

	writeError(rr, req, http.StatusBadRequest, "unknown team", nil)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected json content type, got %s", got)
	}
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if body["error"] != "unknown team" || body["requestId"] != "req-1" {
		t.Fatalf("unexpected error body %+v", body)
	}
}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusOK, func() {}, logger)

	if !strings.Contains(buf.String(), "failed to encode response") {
		t.Fatalf("expected encode failure logged, got %s", buf.String())
	}
}

func TestLoggerFromContextPrefersRequestLogger(t *testing.T) {
	fallback, _ := testutil.NewBufferLogger()
	scoped, _ := testutil.NewBufferLogger()

	if got := loggerFromContext(nil, fallback); got != fallback {
		t.Fatalf("expected fallback for nil request")
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logging.WithLogger(context.Background(), scoped))
	if got := loggerFromContext(req, fallback); got != scoped {
		t.Fatalf("expected request-scoped logger")
	}
}
