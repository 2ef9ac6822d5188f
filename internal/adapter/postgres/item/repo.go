// Package item implements the catalog item repository using PostgreSQL.
// Queries are built with squirrel and scanned with pgxscan; every method
// runs on the transaction carried by ctx when there is one.
package item

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/megamarket-backend/internal/adapter/postgres"
	"github.com/heartmarshall/megamarket-backend/internal/domain"
)

const table = "items"

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	selectColumns = []string{"id", "name", "type::text AS type", "parent_id", "price", "updated_at"}
)

// row mirrors one items record.
type row struct {
	ID        uuid.UUID  `db:"id"`
	Name      string     `db:"name"`
	Type      string     `db:"type"`
	ParentID  *uuid.UUID `db:"parent_id"`
	Price     *int64     `db:"price"`
	UpdatedAt time.Time  `db:"updated_at"`
}

func (r row) toDomain() domain.Item {
	return domain.Item{
		ID:        r.ID,
		Name:      r.Name,
		Type:      domain.ItemType(r.Type),
		ParentID:  r.ParentID,
		Price:     r.Price,
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func toDomainItems(rows []row) []domain.Item {
	items := make([]domain.Item, len(rows))
	for i, r := range rows {
		items[i] = r.toDomain()
	}
	return items
}

// Repo provides item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new item repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an item by primary key.
// Returns domain.ErrNotFound if the item does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query, args, err := psql.Select(selectColumns...).
		From(table).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item: %w", err)
	}

	var rec row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rec, query, args...); err != nil {
		return nil, postgres.MapError(err, "item", id)
	}

	item := rec.toDomain()
	return &item, nil
}

// GetByIDs returns the items among ids that exist, in no particular order.
// Missing ids are silently skipped.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Item, error) {
	if len(ids) == 0 {
		return []domain.Item{}, nil
	}

	query, args, err := psql.Select(selectColumns...).
		From(table).
		Where("id = ANY(?::uuid[])", ids).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get items: %w", err)
	}

	return r.selectItems(ctx, "get items by ids", query, args)
}

// ListByParentIDs returns the direct children of every id in parentIDs,
// ordered by parent, name, id.
func (r *Repo) ListByParentIDs(ctx context.Context, parentIDs []uuid.UUID) ([]domain.Item, error) {
	if len(parentIDs) == 0 {
		return []domain.Item{}, nil
	}

	query, args, err := psql.Select(selectColumns...).
		From(table).
		Where("parent_id = ANY(?::uuid[])", parentIDs).
		OrderBy("parent_id", "name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list children: %w", err)
	}

	return r.selectItems(ctx, "list items by parent ids", query, args)
}

// ListRoots returns all items without a parent, ordered by name, id.
func (r *Repo) ListRoots(ctx context.Context) ([]domain.Item, error) {
	query, args, err := psql.Select(selectColumns...).
		From(table).
		Where(sq.Eq{"parent_id": nil}).
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list roots: %w", err)
	}

	return r.selectItems(ctx, "list root items", query, args)
}

// ListOffersUpdatedBetween returns offers whose updated_at lies in
// [from, to], oldest first.
func (r *Repo) ListOffersUpdatedBetween(ctx context.Context, from, to time.Time) ([]domain.Item, error) {
	query, args, err := psql.Select(selectColumns...).
		From(table).
		Where("type = ?::item_type", string(domain.ItemTypeOffer)).
		Where("updated_at >= ?", from).
		Where("updated_at <= ?", to).
		OrderBy("updated_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list offers: %w", err)
	}

	return r.selectItems(ctx, "list offers updated between", query, args)
}

func (r *Repo) selectItems(ctx context.Context, op, query string, args []any) ([]domain.Item, error) {
	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, postgres.MapError(err, "item", "*"))
	}
	return toDomainItems(rows), nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new item.
// Returns domain.ErrAlreadyExists if the id is taken.
func (r *Repo) Create(ctx context.Context, item *domain.Item) error {
	query, args, err := psql.Insert(table).
		Columns("id", "name", "type", "parent_id", "price", "updated_at").
		Values(item.ID, item.Name, sq.Expr("?::item_type", string(item.Type)), item.ParentID, item.Price, item.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "item", item.ID)
	}
	return nil
}

// Update replaces every mutable field of an existing item.
// Returns domain.ErrNotFound if the item does not exist.
func (r *Repo) Update(ctx context.Context, item *domain.Item) error {
	query, args, err := psql.Update(table).
		Set("name", item.Name).
		Set("type", sq.Expr("?::item_type", string(item.Type))).
		Set("parent_id", item.ParentID).
		Set("price", item.Price).
		Set("updated_at", item.UpdatedAt).
		Where("id = ?", item.ID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update item: %w", err)
	}

	return r.execOne(ctx, item.ID, query, args)
}

// UpdatePrice sets only the price column. updated_at is left untouched.
func (r *Repo) UpdatePrice(ctx context.Context, id uuid.UUID, price *int64) error {
	query, args, err := psql.Update(table).
		Set("price", price).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update price: %w", err)
	}

	return r.execOne(ctx, id, query, args)
}

// Reparent moves every direct child of parentID under newParentID
// (nil makes them roots) and returns how many rows moved.
func (r *Repo) Reparent(ctx context.Context, parentID uuid.UUID, newParentID *uuid.UUID) (int64, error) {
	query, args, err := psql.Update(table).
		Set("parent_id", newParentID).
		Where("parent_id = ?", parentID).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build reparent: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "item children of", parentID)
	}
	return tag.RowsAffected(), nil
}

// Delete removes an item by id.
// Returns domain.ErrNotFound if the item does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete(table).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete item: %w", err)
	}

	return r.execOne(ctx, id, query, args)
}

func (r *Repo) execOne(ctx context.Context, id uuid.UUID, query string, args []any) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "item", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
