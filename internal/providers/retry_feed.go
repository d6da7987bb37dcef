package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/domain/players"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

// retryingFeed wraps a Feed with exponential backoff retries and records every attempt.
type retryingFeed struct {
	inner       Feed
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// NewRetryingFeed wraps the given feed with retries. If maxAttempts/initial are <= 0, defaults are used.
func NewRetryingFeed(inner Feed, logger *slog.Logger, rec *metrics.Recorder, name string, maxAttempts int, initial time.Duration) Feed {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingFeed{
		inner:       inner,
		logger:      logger,
		metrics:     rec,
		name:        name,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			eb := backoff.NewExponentialBackOff()
			eb.InitialInterval = initial
			eb.MaxInterval = maxBackoff
			eb.MaxElapsedTime = 0
			return eb
		},
	}
}

func (r *retryingFeed) FetchSchedule(ctx context.Context, season int) ([]games.Game, error) {
	return retry(ctx, r, "schedule", func(ctx context.Context) ([]games.Game, error) {
		return r.inner.FetchSchedule(ctx, season)
	})
}

func (r *retryingFeed) FetchSnapshot(ctx context.Context, gameUUID string, gameID int) (*games.Snapshot, error) {
	return retry(ctx, r, "snapshot", func(ctx context.Context) (*games.Snapshot, error) {
		return r.inner.FetchSnapshot(ctx, gameUUID, gameID)
	})
}

func (r *retryingFeed) FetchStandings(ctx context.Context, season int) ([]games.Standing, error) {
	return retry(ctx, r, "standings", func(ctx context.Context) ([]games.Standing, error) {
		return r.inner.FetchStandings(ctx, season)
	})
}

func (r *retryingFeed) FetchPlayers(ctx context.Context, season int) ([]players.Player, error) {
	return retry(ctx, r, "players", func(ctx context.Context) ([]players.Player, error) {
		return r.inner.FetchPlayers(ctx, season)
	})
}

func retry[T any](ctx context.Context, r *retryingFeed, op string, fn func(context.Context) (T, error)) (T, error) {
	var (
		result  T
		attempt int
	)
	if r.inner == nil {
		return result, ErrProviderUnavailable
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxAttempts-1)), ctx)
	operation := func() error {
		attempt++
		start := time.Now()
		v, err := fn(ctx)
		r.metrics.RecordProviderAttempt(r.name, time.Since(start), err)
		if err == nil {
			result = v
			return nil
		}
		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.name, rl.RetryAfter)
			if rl.RetryAfter > 0 {
				return backoff.Permanent(err)
			}
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		r.logWarn(ctx, "feed fetch retry",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Duration("delay", delay),
			slog.Any("err", err),
		)
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		r.logWarn(ctx, "feed fetch failed", slog.String("op", op), slog.Int("attempts", attempt), slog.Any("err", err))
		var zero T
		return zero, err
	}
	return result, nil
}

// retryable reports whether a failed call should be attempted again.
// A rate limit with an explicit Retry-After is left to the next poll.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if up, ok := AsUpstreamError(err); ok {
		return up.Temporary()
	}
	return true
}

func (r *retryingFeed) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger.Warn(msg, append(args, slog.String(logging.FieldProvider, r.name))...)
	}
}
