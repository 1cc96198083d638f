package mocks

import (
	context "context"

	model "github.com/dtroode/contacts-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// SessionResolver is a mock type for the SessionResolver type
type SessionResolver struct {
	mock.Mock
}

// Resolve provides a mock function with given fields: ctx, token
func (_m *SessionResolver) Resolve(ctx context.Context, token string) (model.User, error) {
	ret := _m.Called(ctx, token)

	return ret.Get(0).(model.User), ret.Error(1)
}

// NewSessionResolver creates a new instance of SessionResolver. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSessionResolver(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionResolver {
	m := &SessionResolver{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
