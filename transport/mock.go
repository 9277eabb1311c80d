package transport

import (
	"context"
	"reflect"
	"sync"

	"github.com/anchorkit/anchorkit/failure"
)

// MockTransport is a deterministic Transport for tests: responses are
// pre-stubbed per request, calls are counted, and the whole transport can
// be switched into a failing state.
type MockTransport struct {
	mu        sync.Mutex
	stubs     []stub
	callCount int
	failErr   error
}

type stub struct {
	req  Request
	resp Response
	err  error
}

// NewMockTransport returns an empty, healthy MockTransport.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Stub registers resp as the answer for requests equal to req.
func (m *MockTransport) Stub(req Request, resp Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, stub{req: req, resp: resp})
}

// StubError registers err as the answer for requests equal to req.
func (m *MockTransport) StubError(req Request, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, stub{req: req, err: err})
}

// FailWith makes every Send return err until Reset. A nil err restores
// normal stub lookup.
func (m *MockTransport) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// CallCount reports how many Send calls were made.
func (m *MockTransport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears stubs, the call counter, and the failing state.
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = nil
	m.callCount = 0
	m.failErr = nil
}

func (m *MockTransport) Send(_ context.Context, req Request) (Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++

	if m.failErr != nil {
		return nil, m.failErr
	}

	for _, s := range m.stubs {
		if reflect.DeepEqual(s.req, req) {
			if s.err != nil {
				return nil, s.err
			}
			return s.resp, nil
		}
	}
	return nil, failure.New(failure.KindValidation, req.method(), "no stubbed response for request")
}

func (m *MockTransport) Available() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failErr == nil
}

func (m *MockTransport) Name() string { return "MockTransport" }
