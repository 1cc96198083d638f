package mocks

import (
	context "context"

	model "github.com/dtroode/contacts-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// SessionCache is a mock type for the SessionCache type
type SessionCache struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, email
func (_m *SessionCache) Get(ctx context.Context, email string) (model.SessionSnapshot, bool, error) {
	ret := _m.Called(ctx, email)

	return ret.Get(0).(model.SessionSnapshot), ret.Bool(1), ret.Error(2)
}

// Put provides a mock function with given fields: ctx, email, snapshot
func (_m *SessionCache) Put(ctx context.Context, email string, snapshot model.SessionSnapshot) error {
	ret := _m.Called(ctx, email, snapshot)

	return ret.Error(0)
}

// NewSessionCache creates a new instance of SessionCache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSessionCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionCache {
	m := &SessionCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
