package document

import (
	"context"
	"sync"

	"github.com/heartmarshall/queue-backend/internal/domain"
)

var _ auditRepo = &auditRepoMock{}

type auditRepoMock struct {
	CreateFunc         func(ctx context.Context, rec domain.AuditRecord) (domain.AuditRecord, error)
	ListByDocumentFunc func(ctx context.Context, documentID string, limit int) ([]domain.AuditRecord, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Rec domain.AuditRecord
		}
		ListByDocument []struct {
			Ctx        context.Context
			DocumentID string
			Limit      int
		}
	}
	lockCreate         sync.RWMutex
	lockListByDocument sync.RWMutex
}

func (mock *auditRepoMock) Create(ctx context.Context, rec domain.AuditRecord) (domain.AuditRecord, error) {
	if mock.CreateFunc == nil {
		panic("auditRepoMock.CreateFunc: method is nil but auditRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec domain.AuditRecord
	}{Ctx: ctx, Rec: rec}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, rec)
}

func (mock *auditRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Rec domain.AuditRecord
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *auditRepoMock) ListByDocument(ctx context.Context, documentID string, limit int) ([]domain.AuditRecord, error) {
	if mock.ListByDocumentFunc == nil {
		panic("auditRepoMock.ListByDocumentFunc: method is nil but auditRepo.ListByDocument was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		DocumentID string
		Limit      int
	}{Ctx: ctx, DocumentID: documentID, Limit: limit}
	mock.lockListByDocument.Lock()
	mock.calls.ListByDocument = append(mock.calls.ListByDocument, callInfo)
	mock.lockListByDocument.Unlock()
	return mock.ListByDocumentFunc(ctx, documentID, limit)
}

func (mock *auditRepoMock) ListByDocumentCalls() []struct {
	Ctx        context.Context
	DocumentID string
	Limit      int
} {
	mock.lockListByDocument.RLock()
	calls := mock.calls.ListByDocument
	mock.lockListByDocument.RUnlock()
	return calls
}
