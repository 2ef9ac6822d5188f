package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/megamarket-backend/internal/domain"
)

// Now returns a timestamp rounded to the precision postgres stores.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedCategory inserts a CATEGORY with a null price under parent (nil for a root).
func SeedCategory(t *testing.T, pool *pgxpool.Pool, parent *uuid.UUID) domain.Item {
	t.Helper()
	return SeedItem(t, pool, domain.Item{
		ID:        uuid.New(),
		Name:      "category-" + uuid.New().String()[:8],
		Type:      domain.ItemTypeCategory,
		ParentID:  parent,
		UpdatedAt: Now(),
	})
}

// SeedOffer inserts an OFFER with the given price under parent.
func SeedOffer(t *testing.T, pool *pgxpool.Pool, parent *uuid.UUID, price int64) domain.Item {
	t.Helper()
	return SeedItem(t, pool, domain.Item{
		ID:        uuid.New(),
		Name:      "offer-" + uuid.New().String()[:8],
		Type:      domain.ItemTypeOffer,
		ParentID:  parent,
		Price:     &price,
		UpdatedAt: Now(),
	})
}

// SeedItem inserts item verbatim into the items table.
func SeedItem(t *testing.T, pool *pgxpool.Pool, item domain.Item) domain.Item {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO items (id, name, type, parent_id, price, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.Name, string(item.Type), item.ParentID, item.Price, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedItem insert %s: %v", item.ID, err)
	}

	return item
}

// SeedSnapshot appends a history row for item.
func SeedSnapshot(t *testing.T, pool *pgxpool.Pool, item domain.Item) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO item_history (item_id, name, type, parent_id, price, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.Name, string(item.Type), item.ParentID, item.Price, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSnapshot insert %s: %v", item.ID, err)
	}
}
