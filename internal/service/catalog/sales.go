package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/megamarket-backend/internal/domain"
)

// GetRecentSales returns offers updated within the sales window ending at
// asOf, both ends inclusive, oldest first.
func (s *Service) GetRecentSales(ctx context.Context, asOf time.Time) ([]domain.Item, error) {
	if asOf.IsZero() {
		return nil, domain.NewValidationError("date", "required")
	}

	asOf = asOf.UTC()
	offers, err := s.items.ListOffersUpdatedBetween(ctx, asOf.Add(-s.cfg.SalesWindow), asOf)
	if err != nil {
		return nil, fmt.Errorf("list recent offers: %w", err)
	}
	return offers, nil
}
