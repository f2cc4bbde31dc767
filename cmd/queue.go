package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newQueueCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Enqueue background collection jobs",
	}

	cmd.AddCommand(newQueueAddCmd(app))

	return cmd
}

func newQueueAddCmd(app *app) *cobra.Command {
	var rewrite bool
	var analyze bool

	cmd := &cobra.Command{
		Use:   "add <app-id> [app-id...]",
		Short: "Queue one or more games for background collection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appIDs := make([]int64, 0, len(args))
			for _, arg := range args {
				appID, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid app id %q: %w", arg, err)
				}
				appIDs = append(appIDs, appID)
			}

			_, _, client, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			options := map[string]any{
				"enable_rewrite": rewrite,
				"enable_analyze": analyze,
			}

			if len(appIDs) == 1 {
				job, err := client.Enqueue(cmd.Context(), appIDs[0], options)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Queued app %d as job %s\n", job.AppID, job.JobID)
				return nil
			}

			batch, err := client.EnqueueBatch(cmd.Context(), appIDs, options)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Queued %d jobs\n", batch.Count)
			for _, job := range batch.Jobs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  app %d -> job %s\n", job.AppID, job.JobID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&rewrite, "rewrite", false, "Rewrite descriptions with AI")
	cmd.Flags().BoolVar(&analyze, "analyze", false, "Attach AI review analyses")

	return cmd
}
