package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	apiadapter "github.com/bnema/sc-console-cli/internal/adapters/api"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past collection runs",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryStatsCmd(app),
		newHistoryShowCmd(app),
		newHistoryDeleteCmd(app),
	)

	return cmd
}

func newHistoryListCmd(app *app) *cobra.Command {
	var status string
	var limit int
	var offset int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List collection records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, client, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			page, err := client.Records(cmd.Context(), apiadapter.RecordsQuery{
				Status: status,
				Limit:  limit,
				Offset: offset,
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(page)
			}

			if len(page.Items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No records.")
				return nil
			}

			for _, record := range page.Items {
				writeRecordLine(cmd, record)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d of %d records\n", len(page.Items), page.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, running, completed, failed)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output raw JSON")

	return cmd
}

func newHistoryStatsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts by status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, client, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			stats, err := client.RecordStats(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total: %d\ncompleted: %d\nrunning: %d\npending: %d\nfailed: %d\n",
				stats.Total, stats.Completed, stats.Running, stats.Pending, stats.Failed)
			return nil
		},
	}
}

func newHistoryShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <record-id>",
		Short: "Show one collection record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid record id %q: %w", args[0], err)
			}

			_, _, client, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			record, err := client.Record(cmd.Context(), id)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(record)
		},
	}
}

func newHistoryDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <record-id>",
		Short: "Delete one collection record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid record id %q: %w", args[0], err)
			}

			_, _, client, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.DeleteRecord(cmd.Context(), id); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted record %d\n", id)
			return nil
		},
	}
}

func writeRecordLine(cmd *cobra.Command, record apiadapter.Record) {
	line := fmt.Sprintf("%d\t%s\t%s\t%s", record.ID, record.Status, record.GameName, record.Action)
	if record.PostID > 0 {
		line += fmt.Sprintf("\tpost %d", record.PostID)
	}
	if record.Error != "" {
		line += "\t" + record.Error
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
}
