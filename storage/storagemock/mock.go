// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package storagemock is a mockgen-style mock of storage.Store,
// grounded on validatorsmock's go.uber.org/mock wiring (the corpus's
// Server mock is EXPECT()-driven rather than function-field driven;
// storage.Store is small enough to warrant the same treatment rather
// than the Cant*/*F field style blockmock.ChainVM uses).
package storagemock

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockStore is a mock of the storage.Store interface.
type MockStore struct {
	ctrl     *gomock.Controller
	recorder *MockStoreMockRecorder
}

// MockStoreMockRecorder is the mock recorder for MockStore.
type MockStoreMockRecorder struct {
	mock *MockStore
}

// NewMockStore creates a new mock instance.
func NewMockStore(ctrl *gomock.Controller) *MockStore {
	mock := &MockStore{ctrl: ctrl}
	mock.recorder = &MockStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStore) EXPECT() *MockStoreMockRecorder {
	return m.recorder
}

// AppendDA mocks base method.
func (m *MockStore) AppendDA(view uint64, payload []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AppendDA", view, payload)
	ret0, _ := ret[0].(error)
	return ret0
}

// AppendDA indicates an expected call of AppendDA.
func (mr *MockStoreMockRecorder) AppendDA(view, payload any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AppendDA", reflect.TypeOf((*MockStore)(nil).AppendDA), view, payload)
}

// GetDA mocks base method.
func (m *MockStore) GetDA(view uint64) ([]byte, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetDA", view)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetDA indicates an expected call of GetDA.
func (mr *MockStoreMockRecorder) GetDA(view any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetDA", reflect.TypeOf((*MockStore)(nil).GetDA), view)
}

// Close mocks base method.
func (m *MockStore) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close.
func (mr *MockStoreMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockStore)(nil).Close))
}
