package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and update backend settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
		newSettingsTestCmd(app),
	)

	return cmd
}

func newSettingsSetCmd(app *app) *cobra.Command {
	var postStatus string
	var rewriteStyle string
	var steamDelay float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update backend settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, client, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			// Read-modify-write: the backend expects the full settings object.
			settings, err := client.Settings(cmd.Context())
			if err != nil {
				return err
			}

			changed := false
			if cmd.Flags().Changed("post-status") {
				settings.DefaultPostStatus = postStatus
				changed = true
			}
			if cmd.Flags().Changed("rewrite-style") {
				settings.RewriteStyle = rewriteStyle
				changed = true
			}
			if cmd.Flags().Changed("steam-delay") {
				settings.SteamRequestDelay = steamDelay
				changed = true
			}
			if cmd.Flags().Changed("rewrite") {
				settings.EnableAIRewrite, _ = cmd.Flags().GetBool("rewrite")
				changed = true
			}
			if cmd.Flags().Changed("analyze") {
				settings.EnableAIAnalyze, _ = cmd.Flags().GetBool("analyze")
				changed = true
			}
			if !changed {
				return fmt.Errorf("nothing to change: pass at least one flag")
			}

			updated, err := client.UpdateSettings(cmd.Context(), settings)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(updated)
		},
	}

	cmd.Flags().StringVar(&postStatus, "post-status", "", "Default WordPress post status")
	cmd.Flags().StringVar(&rewriteStyle, "rewrite-style", "", "Default AI rewrite style")
	cmd.Flags().Float64Var(&steamDelay, "steam-delay", 0, "Delay between Steam requests in seconds")
	cmd.Flags().Bool("rewrite", false, "Enable AI rewriting by default")
	cmd.Flags().Bool("analyze", false, "Enable AI review analysis by default")

	return cmd
}

func newSettingsShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the backend settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, client, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			settings, err := client.Settings(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(settings)
		},
	}
}

func newSettingsTestCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:       "test <wp|ai>",
		Short:     "Test the backend's WordPress or AI connection",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"wp", "ai"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			result, err := client.TestConnection(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !result.OK {
				return fmt.Errorf("%s connection failed: %s", args[0], result.Error)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s connection OK\n", args[0])
			return nil
		},
	}
}
