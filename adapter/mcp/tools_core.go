package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/giovannadias1704-collab/medplanner-sub000/adapter/cli"
	"github.com/giovannadias1704-collab/medplanner-sub000/pkg/observability"
)

type healthOutput struct {
	Status     observability.HealthStatus                 `json:"status"`
	Components map[string]observability.HealthCheckResult `json:"components,omitempty"`
}

func registerCoreTools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	app := deps.App

	srv.Tool("cli.health").
		Description("Check the capture store and the AI connection").
		Handler(func(ctx context.Context, input struct{}) (*healthOutput, error) {
			if app == nil {
				return nil, errors.New("app not initialized")
			}
			if app.Health == nil {
				return &healthOutput{Status: observability.HealthStatusHealthy}, nil
			}
			results := app.Health.Check(ctx)
			return &healthOutput{Status: observability.OverallStatus(results), Components: results}, nil
		})

	srv.Tool("cli.version").
		Description("Get MedPlanner version information").
		Handler(func(ctx context.Context, input struct{}) (map[string]string, error) {
			return map[string]string{
				"version": cli.Version,
				"commit":  cli.Commit,
			}, nil
		})

	return nil
}
