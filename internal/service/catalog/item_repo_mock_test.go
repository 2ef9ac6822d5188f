package catalog

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/megamarket-backend/internal/domain"
	"sync"
	"time"
)

var _ itemRepo = &itemRepoMock{}

type itemRepoMock struct {
	CreateFunc                   func(ctx context.Context, item *domain.Item) error
	DeleteFunc                   func(ctx context.Context, id uuid.UUID) error
	GetByIDFunc                  func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	GetByIDsFunc                 func(ctx context.Context, ids []uuid.UUID) ([]domain.Item, error)
	ListByParentIDsFunc          func(ctx context.Context, parentIDs []uuid.UUID) ([]domain.Item, error)
	ListOffersUpdatedBetweenFunc func(ctx context.Context, from time.Time, to time.Time) ([]domain.Item, error)
	ListRootsFunc                func(ctx context.Context) ([]domain.Item, error)
	ReparentFunc                 func(ctx context.Context, parentID uuid.UUID, newParentID *uuid.UUID) (int64, error)
	UpdateFunc                   func(ctx context.Context, item *domain.Item) error
	UpdatePriceFunc              func(ctx context.Context, id uuid.UUID, price *int64) error

	calls struct {
		Create []struct {
			Ctx  context.Context
			Item *domain.Item
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByIDs []struct {
			Ctx context.Context
			IDs []uuid.UUID
		}
		ListByParentIDs []struct {
			Ctx       context.Context
			ParentIDs []uuid.UUID
		}
		ListOffersUpdatedBetween []struct {
			Ctx  context.Context
			From time.Time
			To   time.Time
		}
		ListRoots []struct {
			Ctx context.Context
		}
		Reparent []struct {
			Ctx         context.Context
			ParentID    uuid.UUID
			NewParentID *uuid.UUID
		}
		Update []struct {
			Ctx  context.Context
			Item *domain.Item
		}
		UpdatePrice []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Price *int64
		}
	}
	lockCreate                   sync.RWMutex
	lockDelete                   sync.RWMutex
	lockGetByID                  sync.RWMutex
	lockGetByIDs                 sync.RWMutex
	lockListByParentIDs          sync.RWMutex
	lockListOffersUpdatedBetween sync.RWMutex
	lockListRoots                sync.RWMutex
	lockReparent                 sync.RWMutex
	lockUpdate                   sync.RWMutex
	lockUpdatePrice              sync.RWMutex
}

func (mock *itemRepoMock) Create(ctx context.Context, item *domain.Item) error {
	if mock.CreateFunc == nil {
		panic("itemRepoMock.CreateFunc: method is nil but itemRepo.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Item *domain.Item
	}{Ctx: ctx, Item: item}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, item)
}

func (mock *itemRepoMock) CreateCalls() []struct {
	Ctx  context.Context
	Item *domain.Item
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *itemRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("itemRepoMock.DeleteFunc: method is nil but itemRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *itemRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *itemRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if mock.GetByIDFunc == nil {
		panic("itemRepoMock.GetByIDFunc: method is nil but itemRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *itemRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *itemRepoMock) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Item, error) {
	if mock.GetByIDsFunc == nil {
		panic("itemRepoMock.GetByIDsFunc: method is nil but itemRepo.GetByIDs was just called")
	}
	callInfo := struct {
		Ctx context.Context
		IDs []uuid.UUID
	}{Ctx: ctx, IDs: ids}
	mock.lockGetByIDs.Lock()
	mock.calls.GetByIDs = append(mock.calls.GetByIDs, callInfo)
	mock.lockGetByIDs.Unlock()
	return mock.GetByIDsFunc(ctx, ids)
}

func (mock *itemRepoMock) GetByIDsCalls() []struct {
	Ctx context.Context
	IDs []uuid.UUID
} {
	mock.lockGetByIDs.RLock()
	calls := mock.calls.GetByIDs
	mock.lockGetByIDs.RUnlock()
	return calls
}

func (mock *itemRepoMock) ListByParentIDs(ctx context.Context, parentIDs []uuid.UUID) ([]domain.Item, error) {
	if mock.ListByParentIDsFunc == nil {
		panic("itemRepoMock.ListByParentIDsFunc: method is nil but itemRepo.ListByParentIDs was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ParentIDs []uuid.UUID
	}{Ctx: ctx, ParentIDs: parentIDs}
	mock.lockListByParentIDs.Lock()
	mock.calls.ListByParentIDs = append(mock.calls.ListByParentIDs, callInfo)
	mock.lockListByParentIDs.Unlock()
	return mock.ListByParentIDsFunc(ctx, parentIDs)
}

func (mock *itemRepoMock) ListByParentIDsCalls() []struct {
	Ctx       context.Context
	ParentIDs []uuid.UUID
} {
	mock.lockListByParentIDs.RLock()
	calls := mock.calls.ListByParentIDs
	mock.lockListByParentIDs.RUnlock()
	return calls
}

func (mock *itemRepoMock) ListOffersUpdatedBetween(ctx context.Context, from time.Time, to time.Time) ([]domain.Item, error) {
	if mock.ListOffersUpdatedBetweenFunc == nil {
		panic("itemRepoMock.ListOffersUpdatedBetweenFunc: method is nil but itemRepo.ListOffersUpdatedBetween was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		From time.Time
		To   time.Time
	}{Ctx: ctx, From: from, To: to}
	mock.lockListOffersUpdatedBetween.Lock()
	mock.calls.ListOffersUpdatedBetween = append(mock.calls.ListOffersUpdatedBetween, callInfo)
	mock.lockListOffersUpdatedBetween.Unlock()
	return mock.ListOffersUpdatedBetweenFunc(ctx, from, to)
}

func (mock *itemRepoMock) ListOffersUpdatedBetweenCalls() []struct {
	Ctx  context.Context
	From time.Time
	To   time.Time
} {
	mock.lockListOffersUpdatedBetween.RLock()
	calls := mock.calls.ListOffersUpdatedBetween
	mock.lockListOffersUpdatedBetween.RUnlock()
	return calls
}

func (mock *itemRepoMock) ListRoots(ctx context.Context) ([]domain.Item, error) {
	if mock.ListRootsFunc == nil {
		panic("itemRepoMock.ListRootsFunc: method is nil but itemRepo.ListRoots was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListRoots.Lock()
	mock.calls.ListRoots = append(mock.calls.ListRoots, callInfo)
	mock.lockListRoots.Unlock()
	return mock.ListRootsFunc(ctx)
}

func (mock *itemRepoMock) ListRootsCalls() []struct {
	Ctx context.Context
} {
	mock.lockListRoots.RLock()
	calls := mock.calls.ListRoots
	mock.lockListRoots.RUnlock()
	return calls
}

func (mock *itemRepoMock) Reparent(ctx context.Context, parentID uuid.UUID, newParentID *uuid.UUID) (int64, error) {
	if mock.ReparentFunc == nil {
		panic("itemRepoMock.ReparentFunc: method is nil but itemRepo.Reparent was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		ParentID    uuid.UUID
		NewParentID *uuid.UUID
	}{Ctx: ctx, ParentID: parentID, NewParentID: newParentID}
	mock.lockReparent.Lock()
	mock.calls.Reparent = append(mock.calls.Reparent, callInfo)
	mock.lockReparent.Unlock()
	return mock.ReparentFunc(ctx, parentID, newParentID)
}

func (mock *itemRepoMock) ReparentCalls() []struct {
	Ctx         context.Context
	ParentID    uuid.UUID
	NewParentID *uuid.UUID
} {
	mock.lockReparent.RLock()
	calls := mock.calls.Reparent
	mock.lockReparent.RUnlock()
	return calls
}

func (mock *itemRepoMock) Update(ctx context.Context, item *domain.Item) error {
	if mock.UpdateFunc == nil {
		panic("itemRepoMock.UpdateFunc: method is nil but itemRepo.Update was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Item *domain.Item
	}{Ctx: ctx, Item: item}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, item)
}

func (mock *itemRepoMock) UpdateCalls() []struct {
	Ctx  context.Context
	Item *domain.Item
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *itemRepoMock) UpdatePrice(ctx context.Context, id uuid.UUID, price *int64) error {
	if mock.UpdatePriceFunc == nil {
		panic("itemRepoMock.UpdatePriceFunc: method is nil but itemRepo.UpdatePrice was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Price *int64
	}{Ctx: ctx, ID: id, Price: price}
	mock.lockUpdatePrice.Lock()
	mock.calls.UpdatePrice = append(mock.calls.UpdatePrice, callInfo)
	mock.lockUpdatePrice.Unlock()
	return mock.UpdatePriceFunc(ctx, id, price)
}

func (mock *itemRepoMock) UpdatePriceCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Price *int64
} {
	mock.lockUpdatePrice.RLock()
	calls := mock.calls.UpdatePrice
	mock.lockUpdatePrice.RUnlock()
	return calls
}
