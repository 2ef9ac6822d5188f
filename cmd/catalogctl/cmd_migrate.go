package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/megamarket-backend/internal/app"
)

func newMigrateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withCatalog(cmd.Context(), func(cat *app.Catalog) error {
					applied, err := cat.Migrator.Up(cmd.Context())
					if err != nil {
						return err
					}
					c.logger.Info("migrations applied", slog.Int("count", applied))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withCatalog(cmd.Context(), func(cat *app.Catalog) error {
					res, err := cat.Migrator.Down(cmd.Context())
					if err != nil {
						return err
					}
					c.logger.Info("migration rolled back",
						slog.Int64("version", res.Source.Version),
						slog.String("file", res.Source.Path),
					)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withCatalog(cmd.Context(), func(cat *app.Catalog) error {
					statuses, err := cat.Migrator.Status(cmd.Context())
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tFILE")
					for _, s := range statuses {
						applied := "-"
						if !s.AppliedAt.IsZero() {
							applied = s.AppliedAt.UTC().Format("2006-01-02 15:04:05")
						}
						fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
					}
					return tw.Flush()
				})
			},
		},
	)
	return cmd
}
