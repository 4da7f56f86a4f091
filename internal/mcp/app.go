package mcp

import (
	"github.com/giovannadias1704-collab/medplanner-sub000/adapter/cli"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/app"
)

// NewCLIApp creates a CLI application instance backed by the provided container.
func NewCLIApp(container *app.Container) *cli.App {
	cliApp := cli.NewApp(
		container.CaptureItemHandler,
		container.ParseHandler,
		container.ConfirmItemHandler,
		container.ListItemsHandler,
		container.GetItemHandler,
	)
	cliApp.SetCurrentUserID(container.UserID)
	cliApp.SetHealth(container.Health)
	cliApp.SetMetrics(container.Metrics)
	return cliApp
}
