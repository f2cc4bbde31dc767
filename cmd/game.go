package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "game <app-id>",
		Short: "Show Steam store details for one game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid app id %q: %w", args[0], err)
			}

			_, _, client, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			details, err := client.AppDetails(cmd.Context(), appID)
			if err != nil {
				return err
			}

			return writeIndentedJSON(cmd, details)
		},
	}
}
