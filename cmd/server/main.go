package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/shl-live-service/internal/config"
	"github.com/preston-bernstein/shl-live-service/internal/logging"
	"github.com/preston-bernstein/shl-live-service/internal/server"
)

const (
	serviceName = "shl-live-service"
	appVersion  = "dev"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	_ = godotenv.Load(".env")

	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: serviceName,
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop, logger); err != nil {
		logging.Error(logger, "server setup failed", err)
		stop()
		os.Exit(1)
	}
}

// run blocks until ctx is cancelled, or returns the setup error.
func run(ctx context.Context, stop context.CancelFunc, logger *slog.Logger) error {
	srv, err := server.New(ctx, config.Load(), logger)
	if err != nil {
		return err
	}
	srv.Run(ctx, stop)
	return nil
}
