package capture

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/application/commands"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/domain"
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Parse a sentence and store it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		if app.CaptureItemHandler == nil {
			return errNoStore
		}

		result, err := app.CaptureItemHandler.Handle(cmd.Context(), commands.CaptureItemCommand{
			UserID: app.CurrentUserID,
			Text:   joinArgs(args),
		})
		if err != nil {
			return fmt.Errorf("failed to capture: %s", domain.UserMessage(err))
		}

		out := cmd.OutOrStdout()
		intent := result.Outcome.Intent
		fmt.Fprintf(out, "Captured %s %s\n", intent.Category, result.ItemID)
		fmt.Fprintf(out, "  Title: %s\n", intent.Title)
		if intent.HasDate() {
			fmt.Fprintf(out, "  Date: %s\n", intent.Date)
		}
		if intent.HasStartTime() {
			fmt.Fprintf(out, "  Time: %s\n", intent.StartTime)
		}
		if intent.HasAmount() {
			fmt.Fprintf(out, "  Amount: %.2f\n", *intent.Amount)
		}
		fmt.Fprintf(out, "  Confidence: %.2f (%s)\n", result.Outcome.Confidence, result.Outcome.Provenance)
		if result.Outcome.RequiresConfirmation {
			fmt.Fprintf(out, "  Needs confirmation: medplanner capture confirm %s\n", result.ItemID)
		}
		for _, q := range result.Outcome.QuestionsToUser {
			fmt.Fprintf(out, "  ? %s\n", q)
		}
		return nil
	},
}
