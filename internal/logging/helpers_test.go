package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHelpersAreNilSafe(t *testing.T) {
	Info(nil, "info")
	Warn(nil, "warn")
	Debug(nil, "debug")
	Error(nil, "error", errors.New("boom"))
}

func TestErrorAppendsErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	Error(logger, "tick failed", errors.New("boom"), FieldLiveGames, 2)

	out := buf.String()
	if !strings.Contains(out, "error=boom") || !strings.Contains(out, "live_games=2") {
		t.Fatalf("unexpected log output %q", out)
	}
}
