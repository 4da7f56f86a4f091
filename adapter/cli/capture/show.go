package capture

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giovannadias1704-collab/medplanner-sub000/adapter/cli"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/application/queries"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one captured item as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		if app.GetItemHandler == nil {
			return errNoStore
		}
		id, err := parseItemID(args[0])
		if err != nil {
			return err
		}

		item, err := app.GetItemHandler.Handle(cmd.Context(), queries.GetItemQuery{UserID: app.CurrentUserID, ItemID: id})
		if err != nil {
			return fmt.Errorf("%s: %w", domain.UserMessage(err), err)
		}
		return cli.PrintJSON(cmd, item)
	},
}
