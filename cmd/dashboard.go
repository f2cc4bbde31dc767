package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newDashboardCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show collection activity summaries",
	}

	cmd.AddCommand(
		newDashboardTrendCmd(app),
		newDashboardActivityCmd(app),
	)

	return cmd
}

func newDashboardTrendCmd(app *app) *cobra.Command {
	var days int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show the daily collection trend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, client, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			trend, err := client.DashboardTrend(cmd.Context(), days)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(trend)
			}

			for _, point := range trend.Items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\ttotal %d\tcompleted %d\tfailed %d\n",
					point.Day, point.Total, point.Completed, point.Failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days to include")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output raw JSON")

	return cmd
}

func newDashboardActivityCmd(app *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the most recent collection runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, client, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			activity, err := client.DashboardActivity(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if len(activity.Items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No recent activity.")
				return nil
			}

			for _, record := range activity.Items {
				writeRecordLine(cmd, record)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of entries")

	return cmd
}
