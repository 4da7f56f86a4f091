package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/app"
	mcpinternal "github.com/giovannadias1704-collab/medplanner-sub000/internal/mcp"
	"github.com/giovannadias1704-collab/medplanner-sub000/pkg/config"
	"github.com/giovannadias1704-collab/medplanner-sub000/pkg/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		observability.NewLogger(observability.DefaultLogConfig()).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfigFor(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat))

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	if err := mcpinternal.Serve(ctx, cfg, mcpinternal.NewCLIApp(container), logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mcp server error", "error", err)
		container.Close()
		os.Exit(1)
	}
}
