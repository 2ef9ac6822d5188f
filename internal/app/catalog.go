package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/megamarket-backend/internal/adapter/postgres"
	"github.com/heartmarshall/megamarket-backend/internal/adapter/postgres/history"
	"github.com/heartmarshall/megamarket-backend/internal/adapter/postgres/item"
	"github.com/heartmarshall/megamarket-backend/internal/config"
	"github.com/heartmarshall/megamarket-backend/internal/service/catalog"
	"github.com/heartmarshall/megamarket-backend/migrations"
)

// Catalog is the storage-backed catalog engine shared by the server and
// the operator CLI.
type Catalog struct {
	Pool     *pgxpool.Pool
	Migrator *postgres.Migrator
	Service  *catalog.Service
}

// OpenCatalog connects to PostgreSQL, prepares the migrator and builds the
// catalog service. Pending migrations are applied when migrate is true.
// A nil reg leaves the engine metrics unregistered.
func OpenCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer, migrate bool) (*Catalog, error) {
	iso, err := config.ParseIsolation(cfg.Database.TxIsolation)
	if err != nil {
		return nil, fmt.Errorf("database.tx_isolation: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	migrator, err := postgres.NewMigrator(pool, migrations.FS)
	if err != nil {
		pool.Close()
		return nil, err
	}

	if migrate {
		applied, err := migrator.Up(ctx)
		if err != nil {
			_ = migrator.Close()
			pool.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied", slog.Int("count", applied))
	}

	svc := catalog.NewService(
		logger,
		item.New(pool),
		history.New(pool),
		postgres.NewTxManager(pool, iso),
		cfg.Catalog,
		catalog.NewMetrics(reg),
	)

	return &Catalog{Pool: pool, Migrator: migrator, Service: svc}, nil
}

// Close releases the migrator handle and the pool.
func (c *Catalog) Close() {
	_ = c.Migrator.Close()
	c.Pool.Close()
}
