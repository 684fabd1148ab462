package document

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/queue-backend/internal/domain"
)

var _ documentRepo = &documentRepoMock{}

type documentRepoMock struct {
	CreateFunc  func(ctx context.Context, rec domain.DocumentRecord) (domain.DocumentRecord, error)
	GetByIDFunc func(ctx context.Context, ownerID uuid.UUID, id string) (domain.DocumentRecord, error)
	SaveFunc    func(ctx context.Context, ownerID uuid.UUID, doc domain.Document) error
	DeleteFunc  func(ctx context.Context, ownerID uuid.UUID, id string) error
	ListFunc    func(ctx context.Context, ownerID uuid.UUID, filter domain.DocumentFilter) ([]domain.DocumentSummary, int, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Rec domain.DocumentRecord
		}
		GetByID []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
			ID      string
		}
		Save []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
			Doc     domain.Document
		}
		Delete []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
			ID      string
		}
		List []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
			Filter  domain.DocumentFilter
		}
	}
	lockCreate  sync.RWMutex
	lockGetByID sync.RWMutex
	lockSave    sync.RWMutex
	lockDelete  sync.RWMutex
	lockList    sync.RWMutex
}

func (mock *documentRepoMock) Create(ctx context.Context, rec domain.DocumentRecord) (domain.DocumentRecord, error) {
	if mock.CreateFunc == nil {
		panic("documentRepoMock.CreateFunc: method is nil but documentRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec domain.DocumentRecord
	}{Ctx: ctx, Rec: rec}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, rec)
}

func (mock *documentRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Rec domain.DocumentRecord
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *documentRepoMock) GetByID(ctx context.Context, ownerID uuid.UUID, id string) (domain.DocumentRecord, error) {
	if mock.GetByIDFunc == nil {
		panic("documentRepoMock.GetByIDFunc: method is nil but documentRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
		ID      string
	}{Ctx: ctx, OwnerID: ownerID, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, ownerID, id)
}

func (mock *documentRepoMock) GetByIDCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
	ID      string
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *documentRepoMock) Save(ctx context.Context, ownerID uuid.UUID, doc domain.Document) error {
	if mock.SaveFunc == nil {
		panic("documentRepoMock.SaveFunc: method is nil but documentRepo.Save was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
		Doc     domain.Document
	}{Ctx: ctx, OwnerID: ownerID, Doc: doc}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, ownerID, doc)
}

func (mock *documentRepoMock) SaveCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
	Doc     domain.Document
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}

func (mock *documentRepoMock) Delete(ctx context.Context, ownerID uuid.UUID, id string) error {
	if mock.DeleteFunc == nil {
		panic("documentRepoMock.DeleteFunc: method is nil but documentRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
		ID      string
	}{Ctx: ctx, OwnerID: ownerID, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, ownerID, id)
}

func (mock *documentRepoMock) DeleteCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
	ID      string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *documentRepoMock) List(ctx context.Context, ownerID uuid.UUID, filter domain.DocumentFilter) ([]domain.DocumentSummary, int, error) {
	if mock.ListFunc == nil {
		panic("documentRepoMock.ListFunc: method is nil but documentRepo.List was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
		Filter  domain.DocumentFilter
	}{Ctx: ctx, OwnerID: ownerID, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, ownerID, filter)
}

func (mock *documentRepoMock) ListCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
	Filter  domain.DocumentFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
