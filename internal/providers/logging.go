package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/shl-live-service/internal/logging"
)

// feedLog tags a record with the decorator or feed name. Nil loggers drop it.
func feedLog(ctx context.Context, logger *slog.Logger, level slog.Level, feed, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.With(logging.FieldProvider, feed).Log(ctx, level, msg, args...)
}
