package document

import (
	"context"
	"sync"

	"github.com/heartmarshall/queue-backend/internal/domain"
)

var _ templateProvider = &templateProviderMock{}

type templateProviderMock struct {
	FetchFunc func(ctx context.Context, location string) (domain.Document, error)

	calls struct {
		Fetch []struct {
			Ctx      context.Context
			Location string
		}
	}
	lockFetch sync.RWMutex
}

func (mock *templateProviderMock) Fetch(ctx context.Context, location string) (domain.Document, error) {
	if mock.FetchFunc == nil {
		panic("templateProviderMock.FetchFunc: method is nil but templateProvider.Fetch was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Location string
	}{Ctx: ctx, Location: location}
	mock.lockFetch.Lock()
	mock.calls.Fetch = append(mock.calls.Fetch, callInfo)
	mock.lockFetch.Unlock()
	return mock.FetchFunc(ctx, location)
}

func (mock *templateProviderMock) FetchCalls() []struct {
	Ctx      context.Context
	Location string
} {
	mock.lockFetch.RLock()
	calls := mock.calls.Fetch
	mock.lockFetch.RUnlock()
	return calls
}
