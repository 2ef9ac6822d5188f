// Package history implements the append-only item history repository.
package history

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

const table = "item_history"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type row struct {
	Seq       int64      `db:"seq"`
	ItemID    uuid.UUID  `db:"item_id"`
	Name      string     `db:"name"`
	Type      string     `db:"type"`
	ParentID  *uuid.UUID `db:"parent_id"`
	Price     *int64     `db:"price"`
	UpdatedAt time.Time  `db:"updated_at"`
}

func (r row) toDomain() domain.ItemSnapshot {
	return domain.ItemSnapshot{
		Seq:       r.Seq,
		ItemID:    r.ItemID,
		Name:      r.Name,
		Type:      domain.ItemType(r.Type),
		ParentID:  r.ParentID,
		Price:     r.Price,
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

// Repo provides history persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new history repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Append stores a snapshot and returns its sequence number.
func (r *Repo) Append(ctx context.Context, snap domain.ItemSnapshot) (int64, error) {
	query, args, err := psql.Insert(table).
		Columns("item_id", "name", "type", "parent_id", "price", "updated_at").
		Values(snap.ItemID, snap.Name, sq.Expr("?::item_type", string(snap.Type)), snap.ParentID, snap.Price, snap.UpdatedAt).
		Suffix("RETURNING seq").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build append history: %w", err)
	}

	var seq int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&seq); err != nil {
		return 0, postgres.MapError(err, "item_history", snap.ItemID)
	}
	return seq, nil
}

// ListByItem returns the snapshots of one item with start <= updated_at < end,
// ordered by (updated_at, seq). A nil bound is open. An empty slice is
// returned when nothing matches.
func (r *Repo) ListByItem(ctx context.Context, itemID uuid.UUID, start, end *time.Time) ([]domain.ItemSnapshot, error) {
	b := psql.Select("seq", "item_id", "name", "type::text AS type", "parent_id", "price", "updated_at").
		From(table).
		Where("item_id = ?", itemID)
	if start != nil {
		b = b.Where("updated_at >= ?", *start)
	}
	if end != nil {
		b = b.Where("updated_at < ?", *end)
	}

	query, args, err := b.OrderBy("updated_at", "seq").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list history: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "item_history", itemID)
	}

	snaps := make([]domain.ItemSnapshot, len(rows))
	for i, rec := range rows {
		snaps[i] = rec.toDomain()
	}
	return snaps, nil
}

// DeleteByItem removes every snapshot of one item and returns the count.
func (r *Repo) DeleteByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	query, args, err := psql.Delete(table).
		Where("item_id = ?", itemID).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete history: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "item_history", itemID)
	}
	return tag.RowsAffected(), nil
}
