// Package gamestats fetches per-game snapshots and keeps the last complete one per game.
package gamestats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/shl-live-service/internal/domain/games"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/providers"
	"github.com/preston-bernstein/shl-live-service/internal/store"
)

const keyPrefix = "snapshots"

// Result describes where the snapshot returned by UpdateGame came from.
type Result int

const (
	// Fresh means the feed returned a complete snapshot that replaced the cache.
	Fresh Result = iota
	// Incomplete means the feed answered without a recap; the cached snapshot was returned.
	Incomplete
	// Failed means the feed call failed; the cached snapshot was returned.
	Failed
)

func (r Result) String() string {
	switch r {
	case Fresh:
		return "fresh"
	case Incomplete:
		return "incomplete"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// Service owns the snapshot cache.
type Service struct {
	feed   providers.SnapshotFeed
	docs   *store.Collection[*games.Snapshot]
	logger *slog.Logger
}

// NewService wires a snapshot feed to a backend.
func NewService(feed providers.SnapshotFeed, backend store.Backend, logger *slog.Logger) *Service {
	return &Service{
		feed:   feed,
		docs:   store.NewCollection[*games.Snapshot](backend, keyPrefix, nil),
		logger: logger,
	}
}

// UpdateGame fetches the latest snapshot of a game.
//
// Feed failures and incomplete payloads never surface as errors: the cached snapshot (possibly
// nil) is returned together with a Result saying why. The error return is reserved for
// failures to persist a fresh snapshot.
func (s *Service) UpdateGame(ctx context.Context, gameUUID string, gameID int) (*games.Snapshot, Result, error) {
	snap, err := s.feed.FetchSnapshot(ctx, gameUUID, gameID)
	if err != nil {
		logging.Warn(s.logger, "snapshot fetch failed, using cache",
			slog.String(logging.FieldGameUUID, gameUUID),
			slog.Int(logging.FieldGameID, gameID),
			slog.Any("err", err),
		)
		return s.FromCache(gameUUID), Failed, nil
	}
	if !snap.Complete() {
		logging.Info(s.logger, "incomplete snapshot received",
			slog.String(logging.FieldGameUUID, gameUUID),
		)
		return s.FromCache(gameUUID), Incomplete, nil
	}
	if snap.GameUUID == "" {
		snap.GameUUID = gameUUID
	}
	if snap.GameID == 0 {
		snap.GameID = gameID
	}

	if err := s.docs.Doc(gameUUID).Write(ctx, snap); err != nil {
		return nil, Fresh, fmt.Errorf("store snapshot %s: %w", gameUUID, err)
	}
	return snap, Fresh, nil
}

// FromCache returns the cached snapshot of a game, or nil.
func (s *Service) FromCache(gameUUID string) *games.Snapshot {
	return s.docs.Doc(gameUUID).ReadCached()
}

// Read loads the persisted snapshot of a game, or nil when none is stored.
func (s *Service) Read(ctx context.Context, gameUUID string) (*games.Snapshot, error) {
	return s.docs.Doc(gameUUID).Read(ctx)
}

// Prime loads the persisted snapshot into the cache unless it is already cached.
func (s *Service) Prime(ctx context.Context, gameUUID string) error {
	doc := s.docs.Doc(gameUUID)
	if doc.Cached() {
		return nil
	}
	_, err := doc.Read(ctx)
	return err
}
