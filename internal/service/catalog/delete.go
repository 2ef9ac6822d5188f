package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/megamarket-backend/internal/domain"
)

// DeleteResult describes a completed deletion.
type DeleteResult struct {
	ID             uuid.UUID
	FormerParentID *uuid.UUID
	Reparented     int64
	HistoryRemoved int64
	Repriced       bool
}

// DeleteItem removes an item. Its direct children move up to its parent,
// its own history rows are dropped, and descendants' history stays intact.
// Ancestor prices are recomputed only when reprice_on_delete is enabled.
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) (res *DeleteResult, err error) {
	start := time.Now()
	defer func() {
		s.metrics.deletes.WithLabelValues(outcome(err)).Inc()
		s.metrics.observe("delete", start)
	}()

	var descendants int
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.items.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}

		tree, err := s.loadSubtree(txCtx, *item, nil)
		if err != nil {
			return fmt.Errorf("load subtree: %w", err)
		}
		descendants = -1
		walk(tree, func(*domain.ItemNode) { descendants++ })

		res = &DeleteResult{ID: id, FormerParentID: item.ParentID}

		res.Reparented, err = s.items.Reparent(txCtx, id, item.ParentID)
		if err != nil {
			return fmt.Errorf("reparent children: %w", err)
		}

		res.HistoryRemoved, err = s.history.DeleteByItem(txCtx, id)
		if err != nil {
			return fmt.Errorf("delete history: %w", err)
		}

		if err := s.items.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}

		if s.cfg.RepriceOnDelete && item.ParentID != nil {
			if _, err := s.propagate(txCtx, *item.ParentID, nil); err != nil {
				return fmt.Errorf("reprice former parent: %w", err)
			}
			res.Repriced = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "item deleted",
		slog.String("item_id", id.String()),
		slog.Int("descendants", descendants),
		slog.Int64("reparented", res.Reparented),
		slog.Int64("history_removed", res.HistoryRemoved),
		slog.Bool("repriced", res.Repriced),
	)

	return res, nil
}
