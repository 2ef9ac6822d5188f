package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/megamarket-backend/internal/domain"
)

// propagate recomputes the price of start and of every ancestor above it,
// writing only the price column. The walk ends at a node without a parent
// or at a node still pending later in the current batch, whose own upsert
// continues the walk. It returns the number of categories recomputed.
func (s *Service) propagate(ctx context.Context, start uuid.UUID, pending map[uuid.UUID]struct{}) (depth int, err error) {
	defer func() { s.metrics.propagationDepth.Observe(float64(depth)) }()

	memo := make(map[uuid.UUID]*int64)
	visited := make(map[uuid.UUID]struct{})

	for cur := &start; cur != nil; {
		id := *cur
		if _, ok := pending[id]; ok {
			return depth, nil
		}
		if _, ok := visited[id]; ok {
			return depth, fmt.Errorf("ancestor %s: %w", id, domain.ErrCycle)
		}
		visited[id] = struct{}{}

		node, err := s.items.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return depth, fmt.Errorf("ancestor %s: %w", id, domain.ErrNotFound)
			}
			return depth, fmt.Errorf("get ancestor: %w", err)
		}
		if !node.IsCategory() {
			return depth, fmt.Errorf("reprice %s %s: %w", node.Type, id, domain.ErrInvalidType)
		}

		price, err := s.computePrice(ctx, *node, memo)
		if err != nil {
			return depth, fmt.Errorf("compute price of %s: %w", id, err)
		}
		if !domain.SamePrice(price, node.Price) {
			if err := s.items.UpdatePrice(ctx, id, price); err != nil {
				return depth, fmt.Errorf("update price of %s: %w", id, err)
			}
		}

		depth++
		cur = node.ParentID
	}

	return depth, nil
}
