package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/megamarket-backend/internal/app"
)

func newRepriceCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reprice",
		Short: "Recompute every stored category price from its offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withCatalog(cmd.Context(), func(cat *app.Catalog) error {
				res, err := cat.Service.RecalculateAll(cmd.Context())
				if err != nil {
					return err
				}
				c.logger.Info("reprice completed",
					slog.Int("roots", res.Roots),
					slog.Int("categories", res.Categories),
					slog.Int("changed", res.Changed),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "categories: %d, changed: %d\n", res.Categories, res.Changed)
				return nil
			})
		},
	}
}
