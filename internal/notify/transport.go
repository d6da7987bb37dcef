package notify

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/shl-live-service/internal/logging"
)

// SendResponse reports the tokens the transport could not deliver to.
type SendResponse struct {
	FailedTokens []string
	Reason       string
}

// Transport delivers one rendered notification to one device token.
type Transport interface {
	Send(ctx context.Context, note Notification, token string) (SendResponse, error)
}

// LogTransport writes notifications to the log instead of a push provider. It is used when no
// push credentials are configured.
type LogTransport struct {
	Logger *slog.Logger
}

func (t LogTransport) Send(_ context.Context, note Notification, token string) (SendResponse, error) {
	logging.Info(t.Logger, "notification",
		slog.String("title", note.Title),
		slog.String("body", note.Body),
		slog.String("token", redact(token)),
	)
	return SendResponse{}, nil
}

func redact(token string) string {
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "…" + token[len(token)-4:]
}
