package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/giovannadias1704-collab/medplanner-sub000/adapter/cli"
	"github.com/giovannadias1704-collab/medplanner-sub000/adapter/cli/capture"
	"github.com/giovannadias1704-collab/medplanner-sub000/adapter/cli/mcp"
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
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfigFor(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat))
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		// Commands that need the store report it themselves.
		logger.Warn("failed to initialize container, capture commands are unavailable", "error", err)
	} else {
		defer container.Close()
		cli.SetApp(mcpinternal.NewCLIApp(container))
	}

	cli.AddCommand(capture.Cmd)
	cli.AddCommand(mcp.Cmd)

	cli.Execute(ctx)
}
