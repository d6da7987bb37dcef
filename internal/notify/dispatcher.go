package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainevents "github.com/preston-bernstein/shl-live-service/internal/domain/events"
	domainusers "github.com/preston-bernstein/shl-live-service/internal/domain/users"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/metrics"
)

// Outcome is the result of dispatching one event to one user.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeMuted     Outcome = "muted"
)

// Result records the outcome for one user. Results are for observability only; nothing
// retries from them.
type Result struct {
	UserID  string  `json:"user_id"`
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
}

// Options configures a Dispatcher.
type Options struct {
	Topic string
	Muted bool
	Now   func() time.Time
}

// Dispatcher fans events out to the users following the teams involved.
type Dispatcher struct {
	transport Transport
	topic     string
	muted     bool
	now       func() time.Time
	logger    *slog.Logger
	metrics   *metrics.Recorder
}

// NewDispatcher builds a dispatcher around a shared transport.
func NewDispatcher(transport Transport, opts Options, logger *slog.Logger, recorder *metrics.Recorder) *Dispatcher {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		transport: transport,
		topic:     opts.Topic,
		muted:     opts.Muted,
		now:       now,
		logger:    logger,
		metrics:   recorder,
	}
}

// Muted reports whether sends are suppressed.
func (d *Dispatcher) Muted() bool {
	return d.muted
}

// Notify sends ev to every user following one of its teams and returns one Result per user
// considered. When muted, every user is reported muted and the transport is never called.
func (d *Dispatcher) Notify(ctx context.Context, ev domainevents.Event, users []domainusers.User) []Result {
	dispatchID := uuid.NewString()
	log := d.logger
	if log != nil {
		log = log.With(
			slog.String(logging.FieldDispatchID, dispatchID),
			slog.String(logging.FieldGameUUID, ev.Info.GameUUID),
			slog.String(logging.FieldEventID, ev.ID),
		)
	}

	if d.muted {
		results := make([]Result, 0, len(users))
		for _, u := range users {
			results = append(results, d.record(Result{UserID: u.ID, Outcome: OutcomeMuted}))
		}
		logging.Info(log, "notifications muted", slog.Int(logging.FieldCount, len(results)))
		return results
	}

	teamCodes := ev.Teams()
	var results []Result
	for _, u := range users {
		if !u.Follows(teamCodes...) {
			continue
		}
		results = append(results, d.record(d.send(ctx, log, ev, u)))
	}
	return results
}

func (d *Dispatcher) send(ctx context.Context, log *slog.Logger, ev domainevents.Event, u domainusers.User) Result {
	if u.PushToken == "" {
		return Result{UserID: u.ID, Outcome: OutcomeSkipped, Reason: "no push token"}
	}
	if d.transport == nil {
		return Result{UserID: u.ID, Outcome: OutcomeFailed, Reason: "no transport"}
	}

	note := Notification{
		Title:  Title(ev, u.Teams),
		Body:   Body(ev),
		Sound:  defaultSound,
		Topic:  d.topic,
		Expiry: d.now().Add(defaultTTL),
	}
	resp, err := d.transport.Send(ctx, note, u.PushToken)
	if err != nil {
		logging.Warn(log, "notification failed",
			slog.String(logging.FieldUserID, u.ID),
			slog.Any("err", err),
		)
		return Result{UserID: u.ID, Outcome: OutcomeFailed, Reason: err.Error()}
	}
	if len(resp.FailedTokens) > 0 {
		reason := resp.Reason
		if reason == "" {
			reason = "token rejected"
		}
		logging.Warn(log, "notification rejected",
			slog.String(logging.FieldUserID, u.ID),
			slog.String("reason", reason),
		)
		return Result{UserID: u.ID, Outcome: OutcomeFailed, Reason: reason}
	}
	logging.Info(log, "notification sent",
		slog.String(logging.FieldUserID, u.ID),
		slog.String("title", note.Title),
	)
	return Result{UserID: u.ID, Outcome: OutcomeDelivered}
}

func (d *Dispatcher) record(r Result) Result {
	d.metrics.RecordNotification(string(r.Outcome))
	return r
}
