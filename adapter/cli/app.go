package cli

import (
	"github.com/google/uuid"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/application/commands"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/application/queries"
	"github.com/giovannadias1704-collab/medplanner-sub000/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
	// Capture Command Handlers
	CaptureItemHandler *commands.CaptureItemHandler
	ParseHandler       *commands.ParseHandler
	ConfirmItemHandler *commands.ConfirmItemHandler

	// Capture Query Handlers
	ListItemsHandler *queries.ListItemsHandler
	GetItemHandler   *queries.GetItemHandler

	// Health checks for the store and the AI connection
	Health *observability.HealthRegistry

	// Process metrics, nil when the container was not built
	Metrics *observability.InMemoryMetrics

	// Current user (configured per environment)
	CurrentUserID uuid.UUID
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	captureItemHandler *commands.CaptureItemHandler,
	parseHandler *commands.ParseHandler,
	confirmItemHandler *commands.ConfirmItemHandler,
	listItemsHandler *queries.ListItemsHandler,
	getItemHandler *queries.GetItemHandler,
) *App {
	return &App{
		CaptureItemHandler: captureItemHandler,
		ParseHandler:       parseHandler,
		ConfirmItemHandler: confirmItemHandler,
		ListItemsHandler:   listItemsHandler,
		GetItemHandler:     getItemHandler,
		CurrentUserID:      uuid.Nil,
	}
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

// SetHealth updates the health registry.
func (a *App) SetHealth(health *observability.HealthRegistry) {
	a.Health = health
}

// SetMetrics updates the metrics collector.
func (a *App) SetMetrics(metrics *observability.InMemoryMetrics) {
	a.Metrics = metrics
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
