package main

import (
	"github.com/spf13/cobra"

	"github.com/sutram/service-registry/internal/app"
)

func newServeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web application (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, e)
		},
	}
}

func runServe(cmd *cobra.Command, e *env) error {
	return withApp(cmd, e, func(a *app.App) error {
		return a.Run(cmd.Context())
	})
}
