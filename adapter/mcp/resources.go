package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/application/queries"
)

// RegisterResources registers MCP resources for read-only access to captured items.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App

	listResource := func(includeConfirmed bool) func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
		return func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.ListItemsHandler == nil {
				return nil, errCaptureUnavailable
			}
			items, err := app.ListItemsHandler.Handle(ctx, queries.ListItemsQuery{
				UserID:           app.CurrentUserID,
				IncludeConfirmed: includeConfirmed,
			})
			if err != nil {
				return nil, err
			}
			if !includeConfirmed {
				pending := items[:0]
				for _, item := range items {
					if item.Pending {
						pending = append(pending, item)
					}
				}
				items = pending
			}
			return jsonResource(uri, items)
		}
	}

	srv.Resource("medplanner://capture/items").
		Name("Captured Items").
		Description("Every captured item for the current user").
		MimeType("application/json").
		Handler(listResource(true))

	srv.Resource("medplanner://capture/pending").
		Name("Items Needing Confirmation").
		Description("Low-confidence items the user has not confirmed yet").
		MimeType("application/json").
		Handler(listResource(false))

	srv.Resource("medplanner://health").
		Name("Health").
		Description("Status of the capture store and the AI connection").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.Health == nil {
				return nil, fmt.Errorf("health checks require initialization")
			}
			return jsonResource(uri, app.Health.Check(ctx))
		})

	srv.Resource("medplanner://metrics").
		Name("Metrics").
		Description("Counters recorded since the server started").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if app == nil || app.Metrics == nil {
				return nil, fmt.Errorf("metrics require initialization")
			}
			return jsonResource(uri, app.Metrics.Counters())
		})

	return nil
}

func jsonResource(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
