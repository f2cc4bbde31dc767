package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session and discard the stored credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, session, _, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			if err := session.Logout(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged out of %s\n", profile.Name)
			return nil
		},
	}
}
