package scope

import (
	"reflect"

	"github.com/aalemi-dev/scopekit/client"
	"github.com/aalemi-dev/scopekit/event"
	"go.uber.org/mock/gomock"
)

// MockClient is a gomock mock of client.Client.
type MockClient struct {
	ctrl     *gomock.Controller
	recorder *MockClientMockRecorder
}

// MockClientMockRecorder is the mock recorder for MockClient.
type MockClientMockRecorder struct {
	mock *MockClient
}

// NewMockClient creates a new mock instance.
func NewMockClient(ctrl *gomock.Controller) *MockClient {
	mock := &MockClient{ctrl: ctrl}
	mock.recorder = &MockClientMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockClient) EXPECT() *MockClientMockRecorder {
	return m.recorder
}

// CaptureEvent mocks base method.
func (m *MockClient) CaptureEvent(e *event.Event) (event.ID, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CaptureEvent", e)
	ret0, _ := ret[0].(event.ID)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// CaptureEvent indicates an expected call of CaptureEvent.
func (mr *MockClientMockRecorder) CaptureEvent(e any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CaptureEvent", reflect.TypeOf((*MockClient)(nil).CaptureEvent), e)
}

// IsActive mocks base method.
func (m *MockClient) IsActive() bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsActive")
	ret0, _ := ret[0].(bool)
	return ret0
}

// IsActive indicates an expected call of IsActive.
func (mr *MockClientMockRecorder) IsActive() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsActive", reflect.TypeOf((*MockClient)(nil).IsActive))
}

// Options mocks base method.
func (m *MockClient) Options() client.Options {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Options")
	ret0, _ := ret[0].(client.Options)
	return ret0
}

// Options indicates an expected call of Options.
func (mr *MockClientMockRecorder) Options() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Options", reflect.TypeOf((*MockClient)(nil).Options))
}

var _ client.Client = (*MockClient)(nil)
