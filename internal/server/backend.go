package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/shl-live-service/internal/config"
	"github.com/preston-bernstein/shl-live-service/internal/store"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Dial functions are vars so tests can swap them out.
var (
	dialRedis    = func(ctx context.Context, cfg config.StoreConfig) (storeConn, error) { return store.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB) }
	dialMongo    = func(ctx context.Context, cfg config.StoreConfig) (storeConn, error) { return store.DialMongo(ctx, cfg.MongoURI, cfg.MongoDatabase) }
	dialPostgres = func(ctx context.Context, cfg config.StoreConfig) (storeConn, error) { return store.DialPostgres(ctx, cfg.PostgresURL) }
)

type storeConn interface {
	store.Backend
	io.Closer
}

// openBackend builds the configured key-value backend, namespaced by the key prefix. The
// returned closer releases any network connection.
func openBackend(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (store.Backend, io.Closer, error) {
	var (
		conn storeConn
		err  error
	)
	kind := strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch kind {
	case "", "file":
		return store.WithPrefix(store.NewFileBackend(cfg.Path), cfg.KeyPrefix), nopCloser{}, nil
	case "memory":
		return store.WithPrefix(store.NewMemoryBackend(), cfg.KeyPrefix), nopCloser{}, nil
	case "redis":
		conn, err = dialRedis(ctx, cfg)
	case "mongo":
		conn, err = dialMongo(ctx, cfg)
	case "postgres":
		conn, err = dialPostgres(ctx, cfg)
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", kind, err)
	}
	if logger != nil {
		logger.Info("store connected", slog.String("backend", kind), slog.String("prefix", cfg.KeyPrefix))
	}
	return store.WithPrefix(conn, cfg.KeyPrefix), conn, nil
}
