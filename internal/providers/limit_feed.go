package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/domain/players"
)

// rateLimitedFeed wraps a Feed and keeps calls under an upstream request quota.
type rateLimitedFeed struct {
	next    Feed
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedFeed returns a Feed that allows at most requestsPerMinute calls, with bursts of
// up to burst calls. Calls block until a token is available or ctx is done.
func NewRateLimitedFeed(next Feed, requestsPerMinute, burst int, logger *slog.Logger) Feed {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	if burst <= 0 {
		burst = 1
	}
	return &rateLimitedFeed{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), burst),
		logger:  logger,
	}
}

func (p *rateLimitedFeed) FetchSchedule(ctx context.Context, season int) ([]games.Game, error) {
	if err := p.wait(ctx, "schedule"); err != nil {
		return nil, err
	}
	return p.next.FetchSchedule(ctx, season)
}

func (p *rateLimitedFeed) FetchSnapshot(ctx context.Context, gameUUID string, gameID int) (*games.Snapshot, error) {
	if err := p.wait(ctx, "snapshot"); err != nil {
		return nil, err
	}
	return p.next.FetchSnapshot(ctx, gameUUID, gameID)
}

func (p *rateLimitedFeed) FetchStandings(ctx context.Context, season int) ([]games.Standing, error) {
	if err := p.wait(ctx, "standings"); err != nil {
		return nil, err
	}
	return p.next.FetchStandings(ctx, season)
}

func (p *rateLimitedFeed) FetchPlayers(ctx context.Context, season int) ([]players.Player, error) {
	if err := p.wait(ctx, "players"); err != nil {
		return nil, err
	}
	return p.next.FetchPlayers(ctx, season)
}

func (p *rateLimitedFeed) wait(ctx context.Context, op string) error {
	if p == nil || p.next == nil {
		feedLog(ctx, p.loggerOrNil(), slog.LevelWarn, "rate-limited", "provider unavailable")
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		feedLog(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled", slog.String("op", op))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	feedLog(ctx, p.logger, slog.LevelDebug, "rate-limited", "rate-limited feed fetch", slog.String("op", op))
	return nil
}

func (p *rateLimitedFeed) loggerOrNil() *slog.Logger {
	if p == nil {
		return nil
	}
	return p.logger
}
