package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("shl", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("shl", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("shl"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("shl"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("shl"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	if snap := rec.Snapshot("missing"); snap != (FeedStats{}) {
		t.Fatalf("expected zero stats for unknown feed, got %+v", snap)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("shl", 5*time.Second)
	rec.RecordRateLimit("shl", 0)

	if got := rec.RateLimitHits("shl"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("shl"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksTicksEventsAndNotifications(t *testing.T) {
	rec := NewRecorder()
	rec.RecordTick(time.Millisecond, 2, nil)
	rec.RecordTick(time.Millisecond, 0, errors.New("degraded"))
	rec.RecordEvent("Goal")
	rec.RecordEvent("Goal")
	rec.RecordNotification("delivered")
	rec.RecordNotification("skipped")

	total, errored := rec.Ticks()
	if total != 2 || errored != 1 {
		t.Fatalf("expected 2 ticks with 1 error, got %d/%d", total, errored)
	}
	if stats := rec.TickStats(); stats.LiveGames != 0 || stats.LastLatency != time.Millisecond {
		t.Fatalf("expected last tick to win, got %+v", stats)
	}
	if rec.Events("Goal") != 2 || rec.Events("Penalty") != 0 {
		t.Fatalf("unexpected event counts")
	}
	if rec.Notifications("delivered") != 1 || rec.Notifications("skipped") != 1 {
		t.Fatalf("unexpected notification counts")
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordTick(time.Millisecond, 1, nil)
	rec.RecordEvent("Goal")
	rec.RecordNotification("muted")
	rec.RecordProviderAttempt("shl", time.Millisecond, nil)
	if total, _ := rec.Ticks(); total != 0 || rec.LiveGames() != 0 || rec.Events("Goal") != 0 {
		t.Fatalf("expected zero values on nil recorder")
	}
}
