package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instruments mirrors Recorder calls onto OpenTelemetry. A nil *instruments
// drops every observation.
type instruments struct {
	httpRequests   metric.Int64Counter
	httpDuration   metric.Float64Histogram
	feedCalls      metric.Int64Counter
	feedFailures   metric.Int64Counter
	feedDuration   metric.Float64Histogram
	feedLimited    metric.Int64Counter
	feedRetryAfter metric.Float64Histogram
	ticks          metric.Int64Counter
	tickFailures   metric.Int64Counter
	tickDuration   metric.Float64Histogram
	liveGames      metric.Int64Histogram
	gameEvents     metric.Int64Counter
	notifications  metric.Int64Counter
}

func newInstruments(m metric.Meter) (*instruments, error) {
	in := &instruments{}
	var err error
	counter := func(dst *metric.Int64Counter, name, desc string) {
		if err == nil {
			*dst, err = m.Int64Counter(name, metric.WithDescription(desc))
		}
	}
	millis := func(dst *metric.Float64Histogram, name, desc string) {
		if err == nil {
			*dst, err = m.Float64Histogram(name, metric.WithUnit("ms"), metric.WithDescription(desc))
		}
	}

	counter(&in.httpRequests, "shl_http_requests_total", "HTTP requests served")
	millis(&in.httpDuration, "shl_http_request_duration_ms", "HTTP request latency")
	counter(&in.feedCalls, "shl_feed_calls_total", "Calls made to the SHL feed")
	counter(&in.feedFailures, "shl_feed_failures_total", "Feed calls that returned an error")
	millis(&in.feedDuration, "shl_feed_call_duration_ms", "Feed call latency")
	counter(&in.feedLimited, "shl_feed_rate_limited_total", "Feed responses that signalled a rate limit")
	millis(&in.feedRetryAfter, "shl_feed_retry_after_ms", "Retry-After advertised by the feed")
	counter(&in.ticks, "shl_poller_ticks_total", "Poller ticks run")
	counter(&in.tickFailures, "shl_poller_tick_failures_total", "Poller ticks that ended degraded or aborted")
	millis(&in.tickDuration, "shl_poller_tick_duration_ms", "Poller tick latency")
	counter(&in.gameEvents, "shl_game_events_total", "Game events stored after dedup")
	counter(&in.notifications, "shl_notifications_total", "Per-user notification outcomes")
	if err == nil {
		in.liveGames, err = m.Int64Histogram("shl_poller_live_games", metric.WithDescription("Live games tracked at the end of a tick"))
	}
	if err != nil {
		return nil, fmt.Errorf("create instrument: %w", err)
	}
	return in, nil
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func (in *instruments) httpRequest(method, route string, status int, d time.Duration) {
	if in == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrRoute, route),
		attribute.Int(AttrStatus, status),
	)
	ctx := context.Background()
	in.httpRequests.Add(ctx, 1, attrs)
	in.httpDuration.Record(ctx, ms(d), attrs)
}

func (in *instruments) feedCall(feed string, d time.Duration, err error) {
	if in == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrFeed, feed))
	ctx := context.Background()
	in.feedCalls.Add(ctx, 1, attrs)
	in.feedDuration.Record(ctx, ms(d), attrs)
	if err != nil {
		in.feedFailures.Add(ctx, 1, attrs)
	}
}

func (in *instruments) feedRateLimited(feed string, retryAfter time.Duration) {
	if in == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrFeed, feed))
	ctx := context.Background()
	in.feedLimited.Add(ctx, 1, attrs)
	if retryAfter > 0 {
		in.feedRetryAfter.Record(ctx, ms(retryAfter), attrs)
	}
}

func (in *instruments) tick(d time.Duration, live int, err error) {
	if in == nil {
		return
	}
	ctx := context.Background()
	in.ticks.Add(ctx, 1)
	in.tickDuration.Record(ctx, ms(d))
	in.liveGames.Record(ctx, int64(live))
	if err != nil {
		in.tickFailures.Add(ctx, 1)
	}
}

func (in *instruments) gameEvent(eventType string) {
	if in == nil {
		return
	}
	in.gameEvents.Add(context.Background(), 1, metric.WithAttributes(attribute.String(AttrEventType, eventType)))
}

func (in *instruments) notification(outcome string) {
	if in == nil {
		return
	}
	in.notifications.Add(context.Background(), 1, metric.WithAttributes(attribute.String(AttrOutcome, outcome)))
}
