// Package mocks holds a gomock double of provider.Provider, kept in the layout
// mockgen produces so `go generate ./internal/provider` can replace it.
package mocks

import (
	context "context"
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"
	model "iceberg_farmer/internal/model"
)

// MockProvider is a mock of Provider interface.
type MockProvider struct {
	ctrl     *gomock.Controller
	recorder *MockProviderMockRecorder
}

// MockProviderMockRecorder is the mock recorder for MockProvider.
type MockProviderMockRecorder struct {
	mock *MockProvider
}

// NewMockProvider creates a new mock instance.
func NewMockProvider(ctrl *gomock.Controller) *MockProvider {
	mock := &MockProvider{ctrl: ctrl}
	mock.recorder = &MockProviderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockProvider) EXPECT() *MockProviderMockRecorder {
	return m.recorder
}

// Name mocks base method.
func (m *MockProvider) Name() string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Name")
	ret0, _ := ret[0].(string)
	return ret0
}

// Name indicates an expected call of Name.
func (mr *MockProviderMockRecorder) Name() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Name", reflect.TypeOf((*MockProvider)(nil).Name))
}

// CheckProxyIP mocks base method.
func (m *MockProvider) CheckProxyIP(arg0 context.Context, arg1 string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CheckProxyIP", arg0, arg1)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CheckProxyIP indicates an expected call of CheckProxyIP.
func (mr *MockProviderMockRecorder) CheckProxyIP(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CheckProxyIP", reflect.TypeOf((*MockProvider)(nil).CheckProxyIP), arg0, arg1)
}

// Balance mocks base method.
func (m *MockProvider) Balance(arg0 context.Context, arg1 model.Account) (model.Balance, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Balance", arg0, arg1)
	ret0, _ := ret[0].(model.Balance)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Balance indicates an expected call of Balance.
func (mr *MockProviderMockRecorder) Balance(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Balance", reflect.TypeOf((*MockProvider)(nil).Balance), arg0, arg1)
}

// FarmingStatus mocks base method.
func (m *MockProvider) FarmingStatus(arg0 context.Context, arg1 model.Account) (*model.Farming, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FarmingStatus", arg0, arg1)
	ret0, _ := ret[0].(*model.Farming)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FarmingStatus indicates an expected call of FarmingStatus.
func (mr *MockProviderMockRecorder) FarmingStatus(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FarmingStatus", reflect.TypeOf((*MockProvider)(nil).FarmingStatus), arg0, arg1)
}

// StartFarming mocks base method.
func (m *MockProvider) StartFarming(arg0 context.Context, arg1 model.Account) (model.Farming, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StartFarming", arg0, arg1)
	ret0, _ := ret[0].(model.Farming)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// StartFarming indicates an expected call of StartFarming.
func (mr *MockProviderMockRecorder) StartFarming(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StartFarming", reflect.TypeOf((*MockProvider)(nil).StartFarming), arg0, arg1)
}

// CollectFarming mocks base method.
func (m *MockProvider) CollectFarming(arg0 context.Context, arg1 model.Account) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CollectFarming", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// CollectFarming indicates an expected call of CollectFarming.
func (mr *MockProviderMockRecorder) CollectFarming(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CollectFarming", reflect.TypeOf((*MockProvider)(nil).CollectFarming), arg0, arg1)
}

// Tasks mocks base method.
func (m *MockProvider) Tasks(arg0 context.Context, arg1 model.Account) ([]model.Task, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Tasks", arg0, arg1)
	ret0, _ := ret[0].([]model.Task)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Tasks indicates an expected call of Tasks.
func (mr *MockProviderMockRecorder) Tasks(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Tasks", reflect.TypeOf((*MockProvider)(nil).Tasks), arg0, arg1)
}

// UpdateTask mocks base method.
func (m *MockProvider) UpdateTask(arg0 context.Context, arg1 model.Account, arg2 string, arg3 model.TaskStatus) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateTask", arg0, arg1, arg2, arg3)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateTask indicates an expected call of UpdateTask.
func (mr *MockProviderMockRecorder) UpdateTask(arg0, arg1, arg2, arg3 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateTask", reflect.TypeOf((*MockProvider)(nil).UpdateTask), arg0, arg1, arg2, arg3)
}

// CurrentUser mocks base method.
func (m *MockProvider) CurrentUser(arg0 context.Context, arg1 model.Account) (model.CurrentUser, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CurrentUser", arg0, arg1)
	ret0, _ := ret[0].(model.CurrentUser)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CurrentUser indicates an expected call of CurrentUser.
func (mr *MockProviderMockRecorder) CurrentUser(arg0, arg1 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CurrentUser", reflect.TypeOf((*MockProvider)(nil).CurrentUser), arg0, arg1)
}

// FetchAd mocks base method.
func (m *MockProvider) FetchAd(arg0 context.Context, arg1 model.Account, arg2 string) (model.AdBanner, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FetchAd", arg0, arg1, arg2)
	ret0, _ := ret[0].(model.AdBanner)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FetchAd indicates an expected call of FetchAd.
func (mr *MockProviderMockRecorder) FetchAd(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FetchAd", reflect.TypeOf((*MockProvider)(nil).FetchAd), arg0, arg1, arg2)
}

// Track mocks base method.
func (m *MockProvider) Track(arg0 context.Context, arg1 model.Account, arg2 string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Track", arg0, arg1, arg2)
	ret0, _ := ret[0].(error)
	return ret0
}

// Track indicates an expected call of Track.
func (mr *MockProviderMockRecorder) Track(arg0, arg1, arg2 interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Track", reflect.TypeOf((*MockProvider)(nil).Track), arg0, arg1, arg2)
}
