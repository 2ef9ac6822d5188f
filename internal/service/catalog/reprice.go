package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/megamarket-backend/internal/domain"
)

// Recalculate recomputes the price of a category and its ancestors, or of
// an offer's ancestors, and returns the item as stored afterwards.
func (s *Service) Recalculate(ctx context.Context, id uuid.UUID) (item *domain.Item, err error) {
	start := time.Now()
	defer func() {
		s.metrics.recalculations.WithLabelValues("item").Inc()
		s.metrics.observe("recalculate", start)
	}()

	var depth int
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.items.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}

		from := current.ParentID
		if current.IsCategory() {
			from = &current.ID
		}
		if from != nil {
			if depth, err = s.propagate(txCtx, *from, nil); err != nil {
				return fmt.Errorf("propagate: %w", err)
			}
		}

		item, err = s.items.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("reload item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "item repriced",
		slog.String("item_id", id.String()),
		slog.Int("depth", depth),
	)
	return item, nil
}

// RecalculateResult summarizes a full repricing pass.
type RecalculateResult struct {
	Roots      int
	Categories int
	Changed    int
}

// RecalculateAll recomputes every category reachable from a root and
// stores the prices that differ.
func (s *Service) RecalculateAll(ctx context.Context) (res RecalculateResult, err error) {
	start := time.Now()
	defer func() {
		s.metrics.recalculations.WithLabelValues("all").Inc()
		s.metrics.observe("recalculate_all", start)
	}()

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		res = RecalculateResult{}

		roots, err := s.items.ListRoots(txCtx)
		if err != nil {
			return fmt.Errorf("list roots: %w", err)
		}

		for _, root := range roots {
			if !root.IsCategory() {
				continue
			}
			res.Roots++

			tree, err := s.loadSubtree(txCtx, root, nil)
			if err != nil {
				return fmt.Errorf("load subtree %s: %w", root.ID, err)
			}
			prices := categoryPrices(tree, nil)

			var writeErr error
			walk(tree, func(n *domain.ItemNode) {
				if writeErr != nil || !n.IsCategory() {
					return
				}
				res.Categories++
				if domain.SamePrice(prices[n.ID], n.Price) {
					return
				}
				if err := s.items.UpdatePrice(txCtx, n.ID, prices[n.ID]); err != nil {
					writeErr = fmt.Errorf("update price of %s: %w", n.ID, err)
					return
				}
				res.Changed++
			})
			if writeErr != nil {
				return writeErr
			}
		}
		return nil
	})
	if err != nil {
		return RecalculateResult{}, err
	}

	s.log.InfoContext(ctx, "catalog repriced",
		slog.Int("roots", res.Roots),
		slog.Int("categories", res.Categories),
		slog.Int("changed", res.Changed),
	)
	return res, nil
}
