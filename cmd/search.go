package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(app *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the Steam catalog by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			result, err := client.SearchGames(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			if len(result.Items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No games found.")
				return nil
			}

			for _, game := range result.Items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", game.ID, game.Name)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d of %d results\n", len(result.Items), result.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output raw JSON")

	return cmd
}
