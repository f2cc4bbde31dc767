package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "scc",
		Short:         "Steam Collector Console (scc): drive the collector backend from the terminal",
		Long:          "scc (Steam Collector Console) logs into a collector backend, triggers game collection runs, follows live task notifications, and manages history, queue and settings from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().StringVar(&app.profileOverride, "profile", "", "Backend profile to use (defaults to the active one)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newProfileCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newSessionCmd(app),
		newWatchCmd(app),
		newSearchCmd(app),
		newGameCmd(app),
		newCollectCmd(app),
		newQueueCmd(app),
		newHistoryCmd(app),
		newSettingsCmd(app),
		newDashboardCmd(app),
	)

	return rootCmd
}
