package main

import (
	"context"
	"testing"
)

func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

func TestRunReportsSetupFailure(t *testing.T) {
	t.Setenv("STORE_BACKEND", "cassandra")
	t.Setenv("METRICS_ENABLED", "false")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := run(ctx, cancel, nil); err == nil {
		t.Fatalf("expected unknown store backend to fail setup")
	}
}
