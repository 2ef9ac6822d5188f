// Package catalog implements the catalog tree and price engine: subtree
// materialization, category price aggregation, upward propagation after
// imports, deletion with one-level flattening, and the item history log.
package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/megamarket-backend/internal/config"
	"github.com/heartmarshall/megamarket-backend/internal/domain"
)

type itemRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Item, error)
	ListByParentIDs(ctx context.Context, parentIDs []uuid.UUID) ([]domain.Item, error)
	ListRoots(ctx context.Context) ([]domain.Item, error)
	Create(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
	UpdatePrice(ctx context.Context, id uuid.UUID, price *int64) error
	Reparent(ctx context.Context, parentID uuid.UUID, newParentID *uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListOffersUpdatedBetween(ctx context.Context, from, to time.Time) ([]domain.Item, error)
}

type historyRepo interface {
	Append(ctx context.Context, snap domain.ItemSnapshot) (int64, error)
	ListByItem(ctx context.Context, itemID uuid.UUID, start, end *time.Time) ([]domain.ItemSnapshot, error)
	DeleteByItem(ctx context.Context, itemID uuid.UUID) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides catalog operations. Every mutating operation runs in a
// single transaction.
type Service struct {
	items   itemRepo
	history historyRepo
	tx      txManager
	cfg     config.CatalogConfig
	metrics *Metrics
	log     *slog.Logger
}

// NewService creates a new catalog service. A nil metrics value disables
// instrumentation.
func NewService(
	log *slog.Logger,
	items itemRepo,
	history historyRepo,
	tx txManager,
	cfg config.CatalogConfig,
	metrics *Metrics,
) *Service {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Service{
		items:   items,
		history: history,
		tx:      tx,
		cfg:     cfg,
		metrics: metrics,
		log:     log.With("service", "catalog"),
	}
}
