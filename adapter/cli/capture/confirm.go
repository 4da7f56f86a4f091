package capture

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/application/commands"
)

var confirmCmd = &cobra.Command{
	Use:   "confirm <id>",
	Short: "Confirm a captured item after reviewing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		if app.ConfirmItemHandler == nil {
			return errNoStore
		}
		id, err := parseItemID(args[0])
		if err != nil {
			return err
		}

		if err := app.ConfirmItemHandler.Handle(cmd.Context(), commands.ConfirmItemCommand{UserID: app.CurrentUserID, ItemID: id}); err != nil {
			return fmt.Errorf("failed to confirm item: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Confirmed %s\n", id)
		return nil
	},
}
