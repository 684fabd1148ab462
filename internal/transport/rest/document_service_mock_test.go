package rest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/heartmarshall/queue-backend/internal/domain"
	"github.com/heartmarshall/queue-backend/internal/editor"
	"github.com/heartmarshall/queue-backend/internal/service/document"
	"github.com/heartmarshall/queue-backend/internal/timeline"
)

var _ documentService = &documentServiceMock{}

type documentServiceMock struct {
	TemplatesFunc      func() []string
	CreateDocumentFunc func(ctx context.Context, input document.CreateDocumentInput) (domain.DocumentRecord, error)
	ImportFunc         func(ctx context.Context, data []byte) (domain.DocumentRecord, error)
	ListFunc           func(ctx context.Context, input document.ListInput) (document.ListResult, error)
	GetFunc            func(ctx context.Context, id string) (domain.DocumentRecord, error)
	ExportFunc         func(ctx context.Context, id string) ([]byte, domain.Document, error)
	DeleteFunc         func(ctx context.Context, id string) error
	ActivityFunc       func(ctx context.Context, id string, limit int) ([]domain.AuditRecord, error)
	ExecuteFunc        func(ctx context.Context, id string, name string, payload json.RawMessage) (editor.Result, error)
	StateFunc          func(ctx context.Context, id string) (editor.State, error)
	PageObjectsFunc    func(ctx context.Context, id string, pageID string) ([]domain.Object, error)
	SelectionFunc      func(ctx context.Context, id string) ([]domain.Object, error)
	TimelineFunc       func(ctx context.Context, id string, pageID string) (timeline.Tracks, error)
	FrameFunc          func(ctx context.Context, id string, pageID string, index *int) ([]timeline.State, error)

	calls struct {
		Templates []struct {
		}
		CreateDocument []struct {
			Ctx   context.Context
			Input document.CreateDocumentInput
		}
		Import []struct {
			Ctx  context.Context
			Data []byte
		}
		List []struct {
			Ctx   context.Context
			Input document.ListInput
		}
		Get []struct {
			Ctx context.Context
			Id  string
		}
		Export []struct {
			Ctx context.Context
			Id  string
		}
		Delete []struct {
			Ctx context.Context
			Id  string
		}
		Activity []struct {
			Ctx   context.Context
			Id    string
			Limit int
		}
		Execute []struct {
			Ctx     context.Context
			Id      string
			Name    string
			Payload json.RawMessage
		}
		State []struct {
			Ctx context.Context
			Id  string
		}
		PageObjects []struct {
			Ctx    context.Context
			Id     string
			PageID string
		}
		Selection []struct {
			Ctx context.Context
			Id  string
		}
		Timeline []struct {
			Ctx    context.Context
			Id     string
			PageID string
		}
		Frame []struct {
			Ctx    context.Context
			Id     string
			PageID string
			Index  *int
		}
	}
	lockTemplates      sync.RWMutex
	lockCreateDocument sync.RWMutex
	lockImport         sync.RWMutex
	lockList           sync.RWMutex
	lockGet            sync.RWMutex
	lockExport         sync.RWMutex
	lockDelete         sync.RWMutex
	lockActivity       sync.RWMutex
	lockExecute        sync.RWMutex
	lockState          sync.RWMutex
	lockPageObjects    sync.RWMutex
	lockSelection      sync.RWMutex
	lockTimeline       sync.RWMutex
	lockFrame          sync.RWMutex
}

func (mock *documentServiceMock) Templates() []string {
	if mock.TemplatesFunc == nil {
		panic("documentServiceMock.TemplatesFunc: method is nil but documentService.Templates was just called")
	}
	callInfo := struct {
	}{}
	mock.lockTemplates.Lock()
	mock.calls.Templates = append(mock.calls.Templates, callInfo)
	mock.lockTemplates.Unlock()
	return mock.TemplatesFunc()
}

func (mock *documentServiceMock) TemplatesCalls() []struct {
} {
	mock.lockTemplates.RLock()
	calls := mock.calls.Templates
	mock.lockTemplates.RUnlock()
	return calls
}

func (mock *documentServiceMock) CreateDocument(ctx context.Context, input document.CreateDocumentInput) (domain.DocumentRecord, error) {
	if mock.CreateDocumentFunc == nil {
		panic("documentServiceMock.CreateDocumentFunc: method is nil but documentService.CreateDocument was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input document.CreateDocumentInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateDocument.Lock()
	mock.calls.CreateDocument = append(mock.calls.CreateDocument, callInfo)
	mock.lockCreateDocument.Unlock()
	return mock.CreateDocumentFunc(ctx, input)
}

func (mock *documentServiceMock) CreateDocumentCalls() []struct {
	Ctx   context.Context
	Input document.CreateDocumentInput
} {
	mock.lockCreateDocument.RLock()
	calls := mock.calls.CreateDocument
	mock.lockCreateDocument.RUnlock()
	return calls
}

func (mock *documentServiceMock) Import(ctx context.Context, data []byte) (domain.DocumentRecord, error) {
	if mock.ImportFunc == nil {
		panic("documentServiceMock.ImportFunc: method is nil but documentService.Import was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Data []byte
	}{Ctx: ctx, Data: data}
	mock.lockImport.Lock()
	mock.calls.Import = append(mock.calls.Import, callInfo)
	mock.lockImport.Unlock()
	return mock.ImportFunc(ctx, data)
}

func (mock *documentServiceMock) ImportCalls() []struct {
	Ctx  context.Context
	Data []byte
} {
	mock.lockImport.RLock()
	calls := mock.calls.Import
	mock.lockImport.RUnlock()
	return calls
}

func (mock *documentServiceMock) List(ctx context.Context, input document.ListInput) (document.ListResult, error) {
	if mock.ListFunc == nil {
		panic("documentServiceMock.ListFunc: method is nil but documentService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input document.ListInput
	}{Ctx: ctx, Input: input}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *documentServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Input document.ListInput
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *documentServiceMock) Get(ctx context.Context, id string) (domain.DocumentRecord, error) {
	if mock.GetFunc == nil {
		panic("documentServiceMock.GetFunc: method is nil but documentService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  string
	}{Ctx: ctx, Id: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *documentServiceMock) GetCalls() []struct {
	Ctx context.Context
	Id  string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *documentServiceMock) Export(ctx context.Context, id string) ([]byte, domain.Document, error) {
	if mock.ExportFunc == nil {
		panic("documentServiceMock.ExportFunc: method is nil but documentService.Export was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  string
	}{Ctx: ctx, Id: id}
	mock.lockExport.Lock()
	mock.calls.Export = append(mock.calls.Export, callInfo)
	mock.lockExport.Unlock()
	return mock.ExportFunc(ctx, id)
}

func (mock *documentServiceMock) ExportCalls() []struct {
	Ctx context.Context
	Id  string
} {
	mock.lockExport.RLock()
	calls := mock.calls.Export
	mock.lockExport.RUnlock()
	return calls
}

func (mock *documentServiceMock) Delete(ctx context.Context, id string) error {
	if mock.DeleteFunc == nil {
		panic("documentServiceMock.DeleteFunc: method is nil but documentService.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  string
	}{Ctx: ctx, Id: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *documentServiceMock) DeleteCalls() []struct {
	Ctx context.Context
	Id  string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *documentServiceMock) Activity(ctx context.Context, id string, limit int) ([]domain.AuditRecord, error) {
	if mock.ActivityFunc == nil {
		panic("documentServiceMock.ActivityFunc: method is nil but documentService.Activity was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Id    string
		Limit int
	}{Ctx: ctx, Id: id, Limit: limit}
	mock.lockActivity.Lock()
	mock.calls.Activity = append(mock.calls.Activity, callInfo)
	mock.lockActivity.Unlock()
	return mock.ActivityFunc(ctx, id, limit)
}

func (mock *documentServiceMock) ActivityCalls() []struct {
	Ctx   context.Context
	Id    string
	Limit int
} {
	mock.lockActivity.RLock()
	calls := mock.calls.Activity
	mock.lockActivity.RUnlock()
	return calls
}

func (mock *documentServiceMock) Execute(ctx context.Context, id string, name string, payload json.RawMessage) (editor.Result, error) {
	if mock.ExecuteFunc == nil {
		panic("documentServiceMock.ExecuteFunc: method is nil but documentService.Execute was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Id      string
		Name    string
		Payload json.RawMessage
	}{Ctx: ctx, Id: id, Name: name, Payload: payload}
	mock.lockExecute.Lock()
	mock.calls.Execute = append(mock.calls.Execute, callInfo)
	mock.lockExecute.Unlock()
	return mock.ExecuteFunc(ctx, id, name, payload)
}

func (mock *documentServiceMock) ExecuteCalls() []struct {
	Ctx     context.Context
	Id      string
	Name    string
	Payload json.RawMessage
} {
	mock.lockExecute.RLock()
	calls := mock.calls.Execute
	mock.lockExecute.RUnlock()
	return calls
}

func (mock *documentServiceMock) State(ctx context.Context, id string) (editor.State, error) {
	if mock.StateFunc == nil {
		panic("documentServiceMock.StateFunc: method is nil but documentService.State was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  string
	}{Ctx: ctx, Id: id}
	mock.lockState.Lock()
	mock.calls.State = append(mock.calls.State, callInfo)
	mock.lockState.Unlock()
	return mock.StateFunc(ctx, id)
}

func (mock *documentServiceMock) StateCalls() []struct {
	Ctx context.Context
	Id  string
} {
	mock.lockState.RLock()
	calls := mock.calls.State
	mock.lockState.RUnlock()
	return calls
}

func (mock *documentServiceMock) PageObjects(ctx context.Context, id string, pageID string) ([]domain.Object, error) {
	if mock.PageObjectsFunc == nil {
		panic("documentServiceMock.PageObjectsFunc: method is nil but documentService.PageObjects was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     string
		PageID string
	}{Ctx: ctx, Id: id, PageID: pageID}
	mock.lockPageObjects.Lock()
	mock.calls.PageObjects = append(mock.calls.PageObjects, callInfo)
	mock.lockPageObjects.Unlock()
	return mock.PageObjectsFunc(ctx, id, pageID)
}

func (mock *documentServiceMock) PageObjectsCalls() []struct {
	Ctx    context.Context
	Id     string
	PageID string
} {
	mock.lockPageObjects.RLock()
	calls := mock.calls.PageObjects
	mock.lockPageObjects.RUnlock()
	return calls
}

func (mock *documentServiceMock) Selection(ctx context.Context, id string) ([]domain.Object, error) {
	if mock.SelectionFunc == nil {
		panic("documentServiceMock.SelectionFunc: method is nil but documentService.Selection was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  string
	}{Ctx: ctx, Id: id}
	mock.lockSelection.Lock()
	mock.calls.Selection = append(mock.calls.Selection, callInfo)
	mock.lockSelection.Unlock()
	return mock.SelectionFunc(ctx, id)
}

func (mock *documentServiceMock) SelectionCalls() []struct {
	Ctx context.Context
	Id  string
} {
	mock.lockSelection.RLock()
	calls := mock.calls.Selection
	mock.lockSelection.RUnlock()
	return calls
}

func (mock *documentServiceMock) Timeline(ctx context.Context, id string, pageID string) (timeline.Tracks, error) {
	if mock.TimelineFunc == nil {
		panic("documentServiceMock.TimelineFunc: method is nil but documentService.Timeline was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     string
		PageID string
	}{Ctx: ctx, Id: id, PageID: pageID}
	mock.lockTimeline.Lock()
	mock.calls.Timeline = append(mock.calls.Timeline, callInfo)
	mock.lockTimeline.Unlock()
	return mock.TimelineFunc(ctx, id, pageID)
}

func (mock *documentServiceMock) TimelineCalls() []struct {
	Ctx    context.Context
	Id     string
	PageID string
} {
	mock.lockTimeline.RLock()
	calls := mock.calls.Timeline
	mock.lockTimeline.RUnlock()
	return calls
}

func (mock *documentServiceMock) Frame(ctx context.Context, id string, pageID string, index *int) ([]timeline.State, error) {
	if mock.FrameFunc == nil {
		panic("documentServiceMock.FrameFunc: method is nil but documentService.Frame was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     string
		PageID string
		Index  *int
	}{Ctx: ctx, Id: id, PageID: pageID, Index: index}
	mock.lockFrame.Lock()
	mock.calls.Frame = append(mock.calls.Frame, callInfo)
	mock.lockFrame.Unlock()
	return mock.FrameFunc(ctx, id, pageID, index)
}

func (mock *documentServiceMock) FrameCalls() []struct {
	Ctx    context.Context
	Id     string
	PageID string
	Index  *int
} {
	mock.lockFrame.RLock()
	calls := mock.calls.Frame
	mock.lockFrame.RUnlock()
	return calls
}
