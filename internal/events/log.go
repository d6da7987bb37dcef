package events

import (
	"context"
	"fmt"
	"log/slog"

	domainevents "github.com/preston-bernstein/shl-live-service/internal/domain/events"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/store"
)

const keyPrefix = "events"

// Log is the append-only event log of every game.
//
// IsDuplicate only consults the cached log, so a game's log must be primed (or written
// through this Log) before its first dedup check after a restart.
type Log struct {
	docs   *store.Collection[[]domainevents.Event]
	logger *slog.Logger
}

// NewLog builds an event log on backend.
func NewLog(backend store.Backend, logger *slog.Logger) *Log {
	return &Log{
		docs:   store.NewCollection(backend, keyPrefix, func() []domainevents.Event { return []domainevents.Event{} }),
		logger: logger,
	}
}

// IsDuplicate reports whether an event with the same identity was already stored for the game.
func (s *Log) IsDuplicate(ev domainevents.Event) bool {
	for _, existing := range s.CachedEvents(ev.Info.GameUUID) {
		if existing.ID == ev.ID {
			return true
		}
	}
	return false
}

// Store appends ev to the log of gameUUID. It does not dedup; callers check IsDuplicate first.
func (s *Log) Store(ctx context.Context, gameUUID string, ev domainevents.Event) error {
	doc := s.docs.Doc(gameUUID)
	entries, err := s.current(ctx, doc)
	if err != nil {
		return err
	}
	entries = append(entries, ev)
	if err := doc.Write(ctx, entries); err != nil {
		return fmt.Errorf("store event %s: %w", ev.ID, err)
	}
	logging.Info(s.logger, "event stored",
		slog.String(logging.FieldGameUUID, gameUUID),
		slog.String(logging.FieldEventType, string(ev.Type())),
		slog.String(logging.FieldEventID, ev.ID),
	)
	return nil
}

// Events loads the persisted log of gameUUID.
func (s *Log) Events(ctx context.Context, gameUUID string) ([]domainevents.Event, error) {
	return s.docs.Doc(gameUUID).Read(ctx)
}

// CachedEvents returns the cached log of gameUUID without touching the backend.
func (s *Log) CachedEvents(gameUUID string) []domainevents.Event {
	return s.docs.Doc(gameUUID).ReadCached()
}

// Prime loads the persisted log of gameUUID into the cache unless it is already cached.
func (s *Log) Prime(ctx context.Context, gameUUID string) error {
	doc := s.docs.Doc(gameUUID)
	if doc.Cached() {
		return nil
	}
	_, err := doc.Read(ctx)
	return err
}

func (s *Log) current(ctx context.Context, doc *store.Doc[[]domainevents.Event]) ([]domainevents.Event, error) {
	if doc.Cached() {
		return doc.ReadCached(), nil
	}
	return doc.Read(ctx)
}
