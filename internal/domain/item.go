package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItemType distinguishes leaf offers from categories.
type ItemType string

const (
	ItemTypeOffer    ItemType = "OFFER"
	ItemTypeCategory ItemType = "CATEGORY"
)

func (t ItemType) String() string { return string(t) }

func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeOffer, ItemTypeCategory:
		return true
	}
	return false
}

// Item is a catalog node. Offers carry an authoritative price; a category's
// price is derived from its descendants and is nil while it has no offers below it.
type Item struct {
	ID        uuid.UUID
	Name      string
	Type      ItemType
	ParentID  *uuid.UUID
	Price     *int64
	UpdatedAt time.Time
}

// IsCategory reports whether the item is an internal node.
func (i *Item) IsCategory() bool {
	return i.Type == ItemTypeCategory
}

// HasParent reports whether the item is attached to a category.
func (i *Item) HasParent() bool {
	return i.ParentID != nil
}

// ItemNode is an Item decorated with its materialized subtree.
// Children is nil for offers and a non-nil (possibly empty) slice for categories.
type ItemNode struct {
	Item
	Children []*ItemNode
}

// ItemSnapshot is one immutable history row: the state of an item at an import timestamp.
type ItemSnapshot struct {
	Seq       int64
	ItemID    uuid.UUID
	Name      string
	Type      ItemType
	ParentID  *uuid.UUID
	Price     *int64
	UpdatedAt time.Time
}

// SnapshotOf captures the current state of an item.
func SnapshotOf(item Item) ItemSnapshot {
	return ItemSnapshot{
		ItemID:    item.ID,
		Name:      item.Name,
		Type:      item.Type,
		ParentID:  cloneUUID(item.ParentID),
		Price:     clonePrice(item.Price),
		UpdatedAt: item.UpdatedAt,
	}
}

// SameParent reports whether two optional parent references point to the same item.
func SameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// SamePrice reports whether two optional prices are equal.
func SamePrice(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func cloneUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func clonePrice(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
