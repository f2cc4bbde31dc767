package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the collector backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, session, _, err := app.connect(cmd.Context())
			if err != nil {
				return err
			}

			resolvedUsername := username
			if resolvedUsername == "" {
				resolvedUsername = envOrDefault("SCC_USERNAME", profile.Username)
			}
			if resolvedUsername == "" {
				return errors.New("no username: pass --username or set one on the profile")
			}

			resolvedPassword := password
			if resolvedPassword == "" {
				resolvedPassword = envOrDefault("SCC_PASSWORD", "")
			}
			if resolvedPassword == "" {
				resolvedPassword, err = promptPassword(cmd)
				if err != nil {
					return err
				}
			}

			err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Logging in...", func(ctx context.Context) error {
				return session.Login(ctx, resolvedUsername, resolvedPassword)
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %s\n", profile.Name, resolvedUsername)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Backend username (defaults to the profile's)")
	cmd.Flags().StringVar(&password, "password", "", "Backend password (prompted when omitted)")

	return cmd
}

func promptPassword(cmd *cobra.Command) (string, error) {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), "Password: ")

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("empty password")
	}

	return password, nil
}
