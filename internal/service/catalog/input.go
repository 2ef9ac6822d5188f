package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/megamarket-backend/internal/domain"
)

// ImportItem is one upsert inside an import batch.
type ImportItem struct {
	ID       uuid.UUID
	Name     string
	Type     domain.ItemType
	ParentID *uuid.UUID
	Price    *int64
}

// ImportInput is an ordered batch of upserts sharing one timestamp.
type ImportInput struct {
	Items      []ImportItem
	UpdateDate time.Time
}

// Validate checks everything that does not need the store and collects all
// errors. maxItems <= 0 means unlimited.
func (i ImportInput) Validate(maxItems int) error {
	var errs []domain.FieldError

	if i.UpdateDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "updateDate", Message: "required"})
	}
	if len(i.Items) == 0 {
		errs = append(errs, domain.FieldError{Field: "items", Message: "at least one item required"})
	}
	if maxItems > 0 && len(i.Items) > maxItems {
		errs = append(errs, domain.FieldError{Field: "items", Message: fmt.Sprintf("max %d items per batch", maxItems)})
	}

	seen := make(map[uuid.UUID]int, len(i.Items))
	for idx, it := range i.Items {
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", idx, name) }

		if it.ID == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: field("id"), Message: "required"})
		} else if first, dup := seen[it.ID]; dup {
			errs = append(errs, domain.FieldError{Field: field("id"), Message: fmt.Sprintf("duplicates items[%d]", first)})
		} else {
			seen[it.ID] = idx
		}

		if strings.TrimSpace(it.Name) == "" {
			errs = append(errs, domain.FieldError{Field: field("name"), Message: "required"})
		}

		switch it.Type {
		case domain.ItemTypeOffer:
			if it.Price == nil {
				errs = append(errs, domain.FieldError{Field: field("price"), Message: "required for OFFER"})
			} else if *it.Price < 0 {
				errs = append(errs, domain.FieldError{Field: field("price"), Message: "must be >= 0"})
			}
		case domain.ItemTypeCategory:
			if it.Price != nil {
				errs = append(errs, domain.FieldError{Field: field("price"), Message: "must be null for CATEGORY"})
			}
		default:
			errs = append(errs, domain.FieldError{Field: field("type"), Message: "must be OFFER or CATEGORY"})
		}

		if it.ParentID != nil {
			if *it.ParentID == uuid.Nil {
				errs = append(errs, domain.FieldError{Field: field("parentId"), Message: "invalid"})
			} else if *it.ParentID == it.ID {
				errs = append(errs, domain.FieldError{Field: field("parentId"), Message: "must not reference itself"})
			}
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// HistoryInput selects snapshots of one item. Start is inclusive, End exclusive.
type HistoryInput struct {
	ItemID uuid.UUID
	Start  *time.Time
	End    *time.Time
}

// Validate checks all fields and collects all errors.
func (i HistoryInput) Validate() error {
	var errs []domain.FieldError

	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Start != nil && i.End != nil && i.End.Before(*i.Start) {
		errs = append(errs, domain.FieldError{Field: "dateEnd", Message: "must not be before dateStart"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
