package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/application/commands"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/application/queries"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
)

type captureTextInput struct {
	Text string `json:"text" jsonschema:"required"`
}

type captureListInput struct {
	IncludeConfirmed bool `json:"include_confirmed,omitempty"`
}

type captureItemInput struct {
	ItemID string `json:"item_id" jsonschema:"required"`
}

type captureAddOutput struct {
	ItemID  string              `json:"item_id"`
	Outcome domain.ParseOutcome `json:"outcome"`
}

var errCaptureUnavailable = errors.New("capture requires a configured store")

func registerCaptureTools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	app := deps.App

	srv.Tool("capture.parse").
		Description("Parse a Portuguese quick-capture sentence into an exam, bill, workout, weight, meal or event without storing it").
		Handler(func(ctx context.Context, input captureTextInput) (*domain.ParseResult, error) {
			ctx = requestContext(ctx)
			if app == nil || app.ParseHandler == nil {
				return nil, errCaptureUnavailable
			}
			result := app.ParseHandler.Handle(ctx, commands.ParseCommand{Text: input.Text})
			return &result, nil
		})

	srv.Tool("capture.add").
		Description("Parse a quick-capture sentence and store it for the current user").
		Handler(func(ctx context.Context, input captureTextInput) (*captureAddOutput, error) {
			ctx = requestContext(ctx)
			if app == nil || app.CaptureItemHandler == nil {
				return nil, errCaptureUnavailable
			}
			result, err := app.CaptureItemHandler.Handle(ctx, commands.CaptureItemCommand{
				UserID: app.CurrentUserID,
				Text:   input.Text,
			})
			if err != nil {
				return nil, errors.New(domain.UserMessage(err))
			}
			return &captureAddOutput{ItemID: result.ItemID.String(), Outcome: result.Outcome}, nil
		})

	srv.Tool("capture.list").
		Description("List captured items, newest first. Confirmed items are hidden unless include_confirmed is set").
		Handler(func(ctx context.Context, input captureListInput) ([]queries.CaptureItemDTO, error) {
			if app == nil || app.ListItemsHandler == nil {
				return nil, errCaptureUnavailable
			}
			return app.ListItemsHandler.Handle(ctx, queries.ListItemsQuery{
				UserID:           app.CurrentUserID,
				IncludeConfirmed: input.IncludeConfirmed,
			})
		})

	srv.Tool("capture.show").
		Description("Show one captured item").
		Handler(func(ctx context.Context, input captureItemInput) (*queries.CaptureItemDTO, error) {
			if app == nil || app.GetItemHandler == nil {
				return nil, errCaptureUnavailable
			}
			id, err := parseUUID(input.ItemID)
			if err != nil {
				return nil, err
			}
			return app.GetItemHandler.Handle(ctx, queries.GetItemQuery{UserID: app.CurrentUserID, ItemID: id})
		})

	srv.Tool("capture.confirm").
		Description("Confirm a captured item after the user reviewed it").
		Handler(func(ctx context.Context, input captureItemInput) (map[string]string, error) {
			ctx = requestContext(ctx)
			if app == nil || app.ConfirmItemHandler == nil {
				return nil, errCaptureUnavailable
			}
			id, err := parseUUID(input.ItemID)
			if err != nil {
				return nil, err
			}
			if err := app.ConfirmItemHandler.Handle(ctx, commands.ConfirmItemCommand{UserID: app.CurrentUserID, ItemID: id}); err != nil {
				return nil, fmt.Errorf("%s: %w", domain.UserMessage(err), err)
			}
			return map[string]string{"item_id": id.String(), "status": "confirmed"}, nil
		})

	return nil
}
