package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	apiadapter "github.com/bnema/sc-console-cli/internal/adapters/api"
	"github.com/spf13/cobra"
)

func newCollectCmd(app *app) *cobra.Command {
	var rewrite bool
	var analyze bool
	var style string
	var postStatus string
	var preview bool

	cmd := &cobra.Command{
		Use:   "collect <app-id>",
		Short: "Collect a Steam game and publish it to WordPress",
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

			request := apiadapter.CollectRequest{
				AppID:         appID,
				EnableRewrite: rewrite,
				EnableAnalyze: analyze,
				RewriteStyle:  style,
				PostStatus:    postStatus,
			}

			if preview {
				raw, err := client.Preview(cmd.Context(), request)
				if err != nil {
					return err
				}
				return writeIndentedJSON(cmd, raw)
			}

			var result apiadapter.CollectResult
			err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), fmt.Sprintf("Collecting app %d...", appID), func(ctx context.Context) error {
				var collectErr error
				result, collectErr = client.Collect(ctx, request)
				return collectErr
			})
			if err != nil {
				return err
			}

			if result.Error != "" {
				return fmt.Errorf("collect app %d: %s", result.AppID, result.Error)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "App %d %s", result.AppID, result.Action)
			if result.PostID > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " (post %d)", result.PostID)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&rewrite, "rewrite", false, "Rewrite the description with AI before publishing")
	cmd.Flags().BoolVar(&analyze, "analyze", false, "Attach an AI review analysis to the post")
	cmd.Flags().StringVar(&style, "style", "", "Rewrite style (e.g. professional, casual)")
	cmd.Flags().StringVar(&postStatus, "post-status", "", "WordPress post status (draft or publish)")
	cmd.Flags().BoolVar(&preview, "preview", false, "Show the generated content without publishing")

	return cmd
}

func writeIndentedJSON(cmd *cobra.Command, raw json.RawMessage) error {
	var pretty any
	if err := json.Unmarshal(raw, &pretty); err != nil {
		_, writeErr := fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return writeErr
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(pretty)
}
