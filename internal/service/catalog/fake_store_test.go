package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/megamarket-backend/internal/domain"
)

// fakeStore is an in-memory record store with transactional rollback. It
// implements itemRepo, historyRepo and txManager, and checks parent
// references at commit like the deferred foreign key does.
type fakeStore struct {
	mu      sync.Mutex
	items   map[uuid.UUID]domain.Item
	history []domain.ItemSnapshot
	seq     int64

	priceWrites []uuid.UUID
	failAppend  int // fail the n-th Append (1-based) when > 0
	appends     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[uuid.UUID]domain.Item)}
}

func cloneItem(it domain.Item) domain.Item {
	if it.ParentID != nil {
		p := *it.ParentID
		it.ParentID = &p
	}
	if it.Price != nil {
		p := *it.Price
		it.Price = &p
	}
	return it
}

// put stores an item directly, bypassing validation.
func (f *fakeStore) put(items ...domain.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range items {
		f.items[it.ID] = cloneItem(it)
	}
}

func (f *fakeStore) get(id uuid.UUID) (domain.Item, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	return cloneItem(it), ok
}

// ---------------------------------------------------------------------------
// txManager
// ---------------------------------------------------------------------------

func (f *fakeStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	savedItems := make(map[uuid.UUID]domain.Item, len(f.items))
	for id, it := range f.items {
		savedItems[id] = cloneItem(it)
	}
	savedHistory := append([]domain.ItemSnapshot(nil), f.history...)
	f.mu.Unlock()

	err := fn(ctx)
	if err == nil {
		err = f.checkReferences()
	}
	if err != nil {
		f.mu.Lock()
		f.items = savedItems
		f.history = savedHistory
		f.mu.Unlock()
	}
	return err
}

func (f *fakeStore) checkReferences() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, it := range f.items {
		if it.ParentID == nil {
			continue
		}
		if _, ok := f.items[*it.ParentID]; !ok {
			return fmt.Errorf("item %s references missing parent %s: %w", id, *it.ParentID, domain.ErrConflict)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// itemRepo
// ---------------------------------------------------------------------------

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	c := cloneItem(it)
	return &c, nil
}

func (f *fakeStore) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Item{}
	for _, id := range ids {
		if it, ok := f.items[id]; ok {
			out = append(out, cloneItem(it))
		}
	}
	return out, nil
}

func (f *fakeStore) ListByParentIDs(_ context.Context, parentIDs []uuid.UUID) ([]domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[uuid.UUID]bool, len(parentIDs))
	for _, id := range parentIDs {
		want[id] = true
	}
	out := []domain.Item{}
	for _, it := range f.items {
		if it.ParentID != nil && want[*it.ParentID] {
			out = append(out, cloneItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if *a.ParentID != *b.ParentID {
			return a.ParentID.String() < b.ParentID.String()
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID.String() < b.ID.String()
	})
	return out, nil
}

func (f *fakeStore) ListRoots(_ context.Context) ([]domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Item{}
	for _, it := range f.items {
		if it.ParentID == nil {
			out = append(out, cloneItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (f *fakeStore) Create(_ context.Context, item *domain.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[item.ID]; ok {
		return fmt.Errorf("item %s: %w", item.ID, domain.ErrAlreadyExists)
	}
	f.items[item.ID] = cloneItem(*item)
	return nil
}

func (f *fakeStore) Update(_ context.Context, item *domain.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[item.ID]; !ok {
		return fmt.Errorf("item %s: %w", item.ID, domain.ErrNotFound)
	}
	f.items[item.ID] = cloneItem(*item)
	return nil
}

func (f *fakeStore) UpdatePrice(_ context.Context, id uuid.UUID, price *int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	it.Price = price
	f.items[id] = cloneItem(it)
	f.priceWrites = append(f.priceWrites, id)
	return nil
}

func (f *fakeStore) Reparent(_ context.Context, parentID uuid.UUID, newParentID *uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, it := range f.items {
		if it.ParentID != nil && *it.ParentID == parentID {
			it.ParentID = newParentID
			f.items[id] = cloneItem(it)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	delete(f.items, id)
	return nil
}

func (f *fakeStore) ListOffersUpdatedBetween(_ context.Context, from, to time.Time) ([]domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Item{}
	for _, it := range f.items {
		if it.Type == domain.ItemTypeOffer && !it.UpdatedAt.Before(from) && !it.UpdatedAt.After(to) {
			out = append(out, cloneItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.Before(out[j].UpdatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// ---------------------------------------------------------------------------
// historyRepo
// ---------------------------------------------------------------------------

var errInjected = errors.New("injected failure")

func (f *fakeStore) Append(_ context.Context, snap domain.ItemSnapshot) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appends++
	if f.failAppend > 0 && f.appends == f.failAppend {
		return 0, errInjected
	}
	f.seq++
	snap.Seq = f.seq
	f.history = append(f.history, snap)
	return snap.Seq, nil
}

func (f *fakeStore) ListByItem(_ context.Context, itemID uuid.UUID, start, end *time.Time) ([]domain.ItemSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.ItemSnapshot{}
	for _, s := range f.history {
		if s.ItemID != itemID {
			continue
		}
		if start != nil && s.UpdatedAt.Before(*start) {
			continue
		}
		if end != nil && !s.UpdatedAt.Before(*end) {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.Before(out[j].UpdatedAt)
		}
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

func (f *fakeStore) DeleteByItem(_ context.Context, itemID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.history[:0]
	var n int64
	for _, s := range f.history {
		if s.ItemID == itemID {
			n++
			continue
		}
		kept = append(kept, s)
	}
	f.history = kept
	return n, nil
}
