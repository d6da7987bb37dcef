package server

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/shl-live-service/internal/config"
	"github.com/preston-bernstein/shl-live-service/internal/metrics"
	"github.com/preston-bernstein/shl-live-service/internal/providers"
	"github.com/preston-bernstein/shl-live-service/internal/providers/fixture"
	"github.com/preston-bernstein/shl-live-service/internal/providers/shl"
)

// feedFactory assembles the feed with shared wrappers (rate limit + retry).
type feedFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newFeedFactory(logger *slog.Logger, metrics *metrics.Recorder) feedFactory {
	return feedFactory{logger: logger, metrics: metrics}
}

func (f feedFactory) build(cfg config.Config) providers.Feed {
	base := selectFeed(cfg, f.logger)
	limited := providers.NewRateLimitedFeed(base, cfg.Feed.RequestsPerMinute, 0, f.logger)
	return providers.NewRetryingFeed(limited, f.logger, f.metrics, feedName(cfg.Provider, base), 0, 0)
}

func selectFeed(cfg config.Config, logger *slog.Logger) providers.Feed {
	switch strings.ToLower(cfg.Provider) {
	case "fixture", "":
		return fixture.New()
	case "shl":
		return shl.NewClient(shl.Config{
			BaseURL:      cfg.Feed.BaseURL,
			ClientID:     cfg.Feed.ClientID,
			ClientSecret: cfg.Feed.ClientSecret,
			Season:       cfg.Season,
			Timeout:      cfg.Feed.Timeout,
			Logger:       logger,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}

// feedName labels metrics and logs, deriving a name from the instance when none is configured.
func feedName(raw string, feed providers.Feed) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if feed != nil {
		return strings.ToLower(fmt.Sprintf("%T", feed))
	}
	return "feed"
}
