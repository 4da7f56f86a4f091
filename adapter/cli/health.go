package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giovannadias1704-collab/medplanner-sub000/pkg/observability"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the capture store and the AI connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		if app.Health == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		}

		results := app.Health.Check(cmd.Context())
		out := cmd.OutOrStdout()
		for _, name := range app.Health.Names() {
			result := results[name]
			fmt.Fprintf(out, "%-6s %-9s %s\n", name, result.Status, result.Message)
		}
		overall := observability.OverallStatus(results)
		fmt.Fprintf(out, "overall: %s\n", overall)
		if overall == observability.HealthStatusUnhealthy {
			return fmt.Errorf("medplanner is unhealthy")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
