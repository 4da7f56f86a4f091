package capture

import (
	"github.com/spf13/cobra"

	"github.com/giovannadias1704-collab/medplanner-sub000/adapter/cli"
	"github.com/giovannadias1704-collab/medplanner-sub000/internal/capture/application/commands"
)

var parseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Parse a sentence and print the result without storing it",
	Example: `  medplanner capture parse tenho prova de anatomia amanhã às 14h
  medplanner capture parse "pagar boleto de 89,90 dia 10"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		if app.ParseHandler == nil {
			return errNoStore
		}

		result := app.ParseHandler.Handle(cmd.Context(), commands.ParseCommand{Text: joinArgs(args)})
		return cli.PrintJSON(cmd, result)
	},
}
