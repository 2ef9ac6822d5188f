package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/megamarket-backend/internal/app"
	"github.com/heartmarshall/megamarket-backend/internal/config"
)

// cli holds state shared by every subcommand. It is filled in by the root
// PersistentPreRunE.
type cli struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger

	open opener
}

type opener func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.Catalog, error)

// openCatalog connects without applying migrations; schema changes go
// through the migrate subcommands only.
func openCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.Catalog, error) {
	return app.OpenCatalog(ctx, cfg, logger, nil, false)
}

func newRootCmd(open opener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Operate the catalog database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path := c.configPath
			if path == "" {
				path = os.Getenv("CONFIG_PATH")
			}
			cfg, err := config.LoadFile(path)
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.logger = app.NewLogger(cfg.Log)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to YAML config (default $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(
		newMigrateCmd(c),
		newRepriceCmd(c),
		newImportCmd(c),
	)
	return root
}

// withCatalog opens the catalog for the duration of fn.
func (c *cli) withCatalog(ctx context.Context, fn func(cat *app.Catalog) error) error {
	cat, err := c.open(ctx, c.cfg, c.logger)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer cat.Close()
	return fn(cat)
}
