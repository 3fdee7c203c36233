package main

import (
	"github.com/spf13/cobra"

	"github.com/sutram/service-registry/internal/app"
	"github.com/sutram/service-registry/internal/infrastructure/config"
	"github.com/sutram/service-registry/pkg/logger"
)

// env is what every subcommand needs after startup.
type env struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	var e env

	root := &cobra.Command{
		Use:          "sutram",
		Short:        "SUTRAM service-request registry",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			e.cfg = cfg
			logger.Init(logger.Options{
				Level:  cfg.LogLevel,
				Pretty: cfg.IsDevelopment(),
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, &e)
		},
	}

	root.AddCommand(
		newServeCmd(&e),
		newUserCmd(&e),
		newDBCmd(&e),
	)
	return root
}

// withApp opens the application for one command and closes it afterwards.
func withApp(cmd *cobra.Command, e *env, fn func(*app.App) error) error {
	a, err := app.New(cmd.Context(), e.cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
