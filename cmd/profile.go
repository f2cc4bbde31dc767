package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/sc-console-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage backend connection profiles",
	}

	cmd.AddCommand(
		newProfileAddCmd(app),
		newProfileListCmd(app),
		newProfileUseCmd(app),
	)

	return cmd
}

func newProfileAddCmd(app *app) *cobra.Command {
	var baseURL string
	var username string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or update a backend profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := domain.Profile{
				Name:     domain.ProfileName(args[0]),
				BaseURL:  strings.TrimRight(baseURL, "/"),
				Username: username,
			}

			if err := app.profiles.Save(cmd.Context(), profile); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %s (%s)\n", profile.Name, profile.BaseURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Backend base URL, e.g. http://localhost:8000")
	cmd.Flags().StringVar(&username, "username", "", "Default username for login")
	_ = cmd.MarkFlagRequired("base-url")

	return cmd
}

func newProfileListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := app.profiles.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(profiles) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No profiles configured. Add one with: scc profile add")
				return nil
			}

			active, err := app.profiles.Active(cmd.Context())
			if err != nil {
				active = domain.Profile{}
			}

			for _, profile := range profiles {
				marker := " "
				if profile.Name == active.Name {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", marker, profile.Name, profile.BaseURL)
			}
			return nil
		},
	}
}

func newProfileUseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Set the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := domain.ProfileName(args[0])
			if err := app.profiles.SetActive(cmd.Context(), name); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Active profile is now %s\n", name)
			return nil
		},
	}
}
