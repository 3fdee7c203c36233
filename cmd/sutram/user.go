package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sutram/service-registry/internal/app"
)

func newUserCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage staff accounts",
	}
	cmd.AddCommand(newUserCreateCmd(e), newUserMigrateCmd(e))
	return cmd
}

func newUserCreateCmd(e *env) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, e, func(a *app.App) error {
				u, err := a.Auth().CreateUser(cmd.Context(), username, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created user %q (id %d)\n", u.Username, u.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUserMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-passwords",
		Short: "Hash every legacy plaintext password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, e, func(a *app.App) error {
				n, err := a.Auth().MigrateLegacyPasswords(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d password(s) migrated\n", n)
				return nil
			})
		},
	}
}
