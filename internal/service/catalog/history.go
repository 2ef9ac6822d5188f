package catalog

import (
	"context"
	"fmt"

	"github.com/heartmarshall/megamarket-backend/internal/domain"
)

// GetHistory returns the snapshots of one item inside the optional window,
// oldest first. An unknown item is domain.ErrNotFound; a known item with no
// rows in the window yields an empty slice.
func (s *Service) GetHistory(ctx context.Context, input HistoryInput) ([]domain.ItemSnapshot, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	snaps, err := s.history.ListByItem(ctx, input.ItemID, input.Start, input.End)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	if len(snaps) > 0 {
		return snaps, nil
	}

	if _, err := s.items.GetByID(ctx, input.ItemID); err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return []domain.ItemSnapshot{}, nil
}
