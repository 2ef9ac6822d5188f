package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/megamarket-backend/internal/domain"
)

// ImportResult summarizes an applied batch.
type ImportResult struct {
	Created int
	Updated int
}

// ImportBatch validates the whole batch, then applies the items in list
// order inside one transaction: create or update, propagate, append history.
// Nothing is written when any item is invalid.
func (s *Service) ImportBatch(ctx context.Context, input ImportInput) (res ImportResult, err error) {
	start := time.Now()
	defer func() {
		s.metrics.imports.WithLabelValues(outcome(err)).Inc()
		s.metrics.observe("import", start)
	}()

	if err := input.Validate(s.cfg.MaxImportItems); err != nil {
		return ImportResult{}, err
	}
	ts := input.UpdateDate.UTC()

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		res = ImportResult{}

		if err := s.checkAgainstStore(txCtx, input.Items); err != nil {
			return err
		}

		pending := make(map[uuid.UUID]struct{}, len(input.Items))
		for _, it := range input.Items {
			pending[it.ID] = struct{}{}
		}

		for _, it := range input.Items {
			delete(pending, it.ID)

			item, created, err := s.upsert(txCtx, it, ts, pending)
			if err != nil {
				return fmt.Errorf("import item %s: %w", it.ID, err)
			}
			if created {
				res.Created++
			} else {
				res.Updated++
			}

			if _, err := s.history.Append(txCtx, domain.SnapshotOf(*item)); err != nil {
				return fmt.Errorf("append history %s: %w", it.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	s.metrics.importedItems.Add(float64(len(input.Items)))
	s.log.InfoContext(ctx, "batch imported",
		slog.Int("items", len(input.Items)),
		slog.Int("created", res.Created),
		slog.Int("updated", res.Updated),
		slog.Time("update_date", ts),
	)

	return res, nil
}

// upsert writes one batch item and propagates from its new parent and,
// when the parent changed, from its old one. It returns the stored state.
func (s *Service) upsert(ctx context.Context, in ImportItem, ts time.Time, pending map[uuid.UUID]struct{}) (*domain.Item, bool, error) {
	old, err := s.items.GetByID(ctx, in.ID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		old = nil
	case err != nil:
		return nil, false, fmt.Errorf("get item: %w", err)
	}

	item := domain.Item{
		ID:        in.ID,
		Name:      in.Name,
		Type:      in.Type,
		ParentID:  in.ParentID,
		Price:     in.Price,
		UpdatedAt: ts,
	}

	// A category may already own children written earlier in this batch
	// or, on update, from before.
	if item.IsCategory() {
		price, err := s.computePrice(ctx, item, nil)
		if err != nil {
			return nil, false, fmt.Errorf("compute own price: %w", err)
		}
		item.Price = price
	}

	if old == nil {
		if err := s.items.Create(ctx, &item); err != nil {
			return nil, false, fmt.Errorf("create: %w", err)
		}
	} else {
		if err := s.items.Update(ctx, &item); err != nil {
			return nil, false, fmt.Errorf("update: %w", err)
		}
	}

	if item.ParentID != nil {
		if _, err := s.propagate(ctx, *item.ParentID, pending); err != nil {
			return nil, false, fmt.Errorf("propagate from new parent: %w", err)
		}
	}
	if old != nil && old.ParentID != nil && !domain.SameParent(old.ParentID, item.ParentID) {
		if _, err := s.propagate(ctx, *old.ParentID, pending); err != nil {
			return nil, false, fmt.Errorf("propagate from old parent: %w", err)
		}
	}

	return &item, old == nil, nil
}

// checkAgainstStore runs the validations that need the current store:
// parents resolve to categories, categories with children stay categories,
// and the parent graph overlaid by the batch stays acyclic.
func (s *Service) checkAgainstStore(ctx context.Context, items []ImportItem) error {
	batch := make(map[uuid.UUID]ImportItem, len(items))
	lookup := make([]uuid.UUID, 0, len(items)*2)
	for _, it := range items {
		batch[it.ID] = it
		lookup = append(lookup, it.ID)
	}
	for _, it := range items {
		if it.ParentID != nil {
			if _, ok := batch[*it.ParentID]; !ok {
				lookup = append(lookup, *it.ParentID)
			}
		}
	}

	rows, err := s.items.GetByIDs(ctx, uniqueIDs(lookup))
	if err != nil {
		return fmt.Errorf("load batch items: %w", err)
	}
	stored := make(map[uuid.UUID]domain.Item, len(rows))
	for _, r := range rows {
		stored[r.ID] = r
	}

	var errs []domain.FieldError
	var demoted []uuid.UUID
	index := make(map[uuid.UUID]int, len(items))

	for idx, it := range items {
		index[it.ID] = idx

		if it.ParentID != nil {
			field := fmt.Sprintf("items[%d].parentId", idx)
			if b, ok := batch[*it.ParentID]; ok {
				if b.Type != domain.ItemTypeCategory {
					errs = append(errs, domain.FieldError{Field: field, Message: "parent must be a CATEGORY"})
				}
			} else if st, ok := stored[*it.ParentID]; ok {
				if !st.IsCategory() {
					errs = append(errs, domain.FieldError{Field: field, Message: "parent must be a CATEGORY"})
				}
			} else {
				errs = append(errs, domain.FieldError{Field: field, Message: "parent not found"})
			}
		}

		if old, ok := stored[it.ID]; ok && old.IsCategory() && it.Type == domain.ItemTypeOffer {
			demoted = append(demoted, it.ID)
		}
	}

	if len(demoted) > 0 {
		children, err := s.items.ListByParentIDs(ctx, demoted)
		if err != nil {
			return fmt.Errorf("list children of demoted categories: %w", err)
		}
		reported := make(map[uuid.UUID]bool)
		for _, c := range children {
			if reported[*c.ParentID] {
				continue
			}
			reported[*c.ParentID] = true
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("items[%d].type", index[*c.ParentID]),
				Message: "CATEGORY with children cannot become OFFER",
			})
		}
	}

	cycleErrs, err := s.findCycles(ctx, items, stored)
	if err != nil {
		return err
	}
	errs = append(errs, cycleErrs...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// findCycles walks every batch item up the parent graph (store overlaid by
// batch) and reports items that reach themselves.
func (s *Service) findCycles(ctx context.Context, items []ImportItem, stored map[uuid.UUID]domain.Item) ([]domain.FieldError, error) {
	parentOf := make(map[uuid.UUID]*uuid.UUID, len(stored)+len(items))
	for id, st := range stored {
		parentOf[id] = st.ParentID
	}
	for _, it := range items {
		parentOf[it.ID] = it.ParentID
	}

	// Resolve store ancestors level by level until every reachable id is known.
	missing := make(map[uuid.UUID]bool)
	for {
		var need []uuid.UUID
		for _, p := range parentOf {
			if p == nil || missing[*p] {
				continue
			}
			if _, ok := parentOf[*p]; !ok {
				need = append(need, *p)
			}
		}
		if len(need) == 0 {
			break
		}
		need = uniqueIDs(need)

		rows, err := s.items.GetByIDs(ctx, need)
		if err != nil {
			return nil, fmt.Errorf("load ancestors: %w", err)
		}
		for _, r := range rows {
			parentOf[r.ID] = r.ParentID
		}
		for _, id := range need {
			if _, ok := parentOf[id]; !ok {
				missing[id] = true
			}
		}
	}

	var errs []domain.FieldError
	for idx, it := range items {
		seen := map[uuid.UUID]bool{it.ID: true}
		for p := parentOf[it.ID]; p != nil; p = parentOf[*p] {
			if *p == it.ID {
				errs = append(errs, domain.FieldError{Field: fmt.Sprintf("items[%d].parentId", idx), Message: "creates a parent cycle"})
				break
			}
			if seen[*p] {
				break
			}
			seen[*p] = true
		}
	}
	return errs, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
