package capture

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/application/queries"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List captured items waiting for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		if app.ListItemsHandler == nil {
			return errNoStore
		}

		items, err := app.ListItemsHandler.Handle(cmd.Context(), queries.ListItemsQuery{
			UserID:           app.CurrentUserID,
			IncludeConfirmed: listAll,
		})
		if err != nil {
			return fmt.Errorf("failed to list capture items: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintln(out, "No captured items.")
			return nil
		}

		for _, item := range items {
			flag := ""
			if item.Pending {
				flag = " (needs confirmation)"
			}
			fmt.Fprintf(out, "%s [%s] %s%s\n", item.ID, item.Category, item.Title, flag)
			if item.Date != "" {
				when := item.Date
				if item.StartTime != "" {
					when += " " + item.StartTime
				}
				fmt.Fprintf(out, "  When: %s\n", when)
			}
			if item.Amount != nil {
				fmt.Fprintf(out, "  Amount: %.2f\n", *item.Amount)
			}
			fmt.Fprintf(out, "  Captured: %s\n", item.CapturedAt)
			fmt.Fprintln(out, strings.Repeat("-", 60))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listAll, "all", false, "include confirmed items")
}
