package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/bnema/sc-console-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the current session state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, session, _, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			claims, err := session.Current(cmd.Context())
			if err != nil {
				if errors.Is(err, domain.ErrCredentialNotFound) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Not logged in to %s. Run: scc login\n", profile.Name)
					return nil
				}
				return err
			}

			remaining := claims.ExpiresAt.Sub(app.now()).Round(time.Second)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %s\n", profile.Name, claims.Subject)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Session expires at %s (%s left)\n", claims.ExpiresAt.Local().Format(time.RFC1123), remaining)
			return nil
		},
	}
}
