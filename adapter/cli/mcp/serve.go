package mcp

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/giovannadias1704-collab/medplanner-sub000/adapter/cli"
	mcpinternal "github.com/giovannadias1704-collab/medplanner-sub000/internal/mcp"
	"github.com/giovannadias1704-collab/medplanner-sub000/pkg/config"
	"github.com/giovannadias1704-collab/medplanner-sub000/pkg/observability"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errors.New("mcp server requires a configured store")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.MCPAddr = serveAddr
		}

		logger := observability.NewLogger(observability.LogConfigFor(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat))
		err = mcpinternal.Serve(cmd.Context(), cfg, app, logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to MCP_ADDR)")
}
