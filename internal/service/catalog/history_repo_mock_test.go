package catalog

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/megamarket-backend/internal/domain"
	"sync"
	"time"
)

var _ historyRepo = &historyRepoMock{}

type historyRepoMock struct {
	AppendFunc       func(ctx context.Context, snap domain.ItemSnapshot) (int64, error)
	DeleteByItemFunc func(ctx context.Context, itemID uuid.UUID) (int64, error)
	ListByItemFunc   func(ctx context.Context, itemID uuid.UUID, start *time.Time, end *time.Time) ([]domain.ItemSnapshot, error)

	calls struct {
		Append []struct {
			Ctx  context.Context
			Snap domain.ItemSnapshot
		}
		DeleteByItem []struct {
			Ctx    context.Context
			ItemID uuid.UUID
		}
		ListByItem []struct {
			Ctx    context.Context
			ItemID uuid.UUID
			Start  *time.Time
			End    *time.Time
		}
	}
	lockAppend       sync.RWMutex
	lockDeleteByItem sync.RWMutex
	lockListByItem   sync.RWMutex
}

func (mock *historyRepoMock) Append(ctx context.Context, snap domain.ItemSnapshot) (int64, error) {
	if mock.AppendFunc == nil {
		panic("historyRepoMock.AppendFunc: method is nil but historyRepo.Append was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Snap domain.ItemSnapshot
	}{Ctx: ctx, Snap: snap}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, snap)
}

func (mock *historyRepoMock) AppendCalls() []struct {
	Ctx  context.Context
	Snap domain.ItemSnapshot
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *historyRepoMock) DeleteByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	if mock.DeleteByItemFunc == nil {
		panic("historyRepoMock.DeleteByItemFunc: method is nil but historyRepo.DeleteByItem was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ItemID uuid.UUID
	}{Ctx: ctx, ItemID: itemID}
	mock.lockDeleteByItem.Lock()
	mock.calls.DeleteByItem = append(mock.calls.DeleteByItem, callInfo)
	mock.lockDeleteByItem.Unlock()
	return mock.DeleteByItemFunc(ctx, itemID)
}

func (mock *historyRepoMock) DeleteByItemCalls() []struct {
	Ctx    context.Context
	ItemID uuid.UUID
} {
	mock.lockDeleteByItem.RLock()
	calls := mock.calls.DeleteByItem
	mock.lockDeleteByItem.RUnlock()
	return calls
}

func (mock *historyRepoMock) ListByItem(ctx context.Context, itemID uuid.UUID, start *time.Time, end *time.Time) ([]domain.ItemSnapshot, error) {
	if mock.ListByItemFunc == nil {
		panic("historyRepoMock.ListByItemFunc: method is nil but historyRepo.ListByItem was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ItemID uuid.UUID
		Start  *time.Time
		End    *time.Time
	}{Ctx: ctx, ItemID: itemID, Start: start, End: end}
	mock.lockListByItem.Lock()
	mock.calls.ListByItem = append(mock.calls.ListByItem, callInfo)
	mock.lockListByItem.Unlock()
	return mock.ListByItemFunc(ctx, itemID, start, end)
}

func (mock *historyRepoMock) ListByItemCalls() []struct {
	Ctx    context.Context
	ItemID uuid.UUID
	Start  *time.Time
	End    *time.Time
} {
	mock.lockListByItem.RLock()
	calls := mock.calls.ListByItem
	mock.lockListByItem.RUnlock()
	return calls
}
