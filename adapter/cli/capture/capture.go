package capture

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/giovannadias1704-collab/medplanner-sub000/adapter/cli"
)

// Cmd groups all quick-capture commands.
var Cmd = &cobra.Command{
	Use:   "capture",
	Short: "Parse and store quick-capture sentences",
}

var errNoStore = errors.New("capture commands require a configured store")

func init() {
	Cmd.AddCommand(parseCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(confirmCmd)
}

func requireApp() (*cli.App, error) {
	app := cli.GetApp()
	if app == nil {
		return nil, errNoStore
	}
	return app, nil
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func parseItemID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid item id %q: %w", value, err)
	}
	return id, nil
}
