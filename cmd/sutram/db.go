package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sutram/service-registry/internal/app"
)

func newDBCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "inspect",
		Short: "List tables and their columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, e, func(a *app.App) error {
				tables, err := a.DB().Inspect(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, t := range tables {
					fmt.Fprintf(w, "%s\n", t.Name)
					for _, c := range t.Columns {
						flags := ""
						if c.PK {
							flags = "PK"
						} else if c.NotNull {
							flags = "NOT NULL"
						}
						fmt.Fprintf(w, "  %s\t%s\t%s\n", c.Name, c.Type, flags)
					}
				}
				return w.Flush()
			})
		},
	})
	return cmd
}
