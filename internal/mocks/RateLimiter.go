package mocks

import (
	context "context"

	ratelimit "github.com/dtroode/contacts-server/internal/ratelimit"
	mock "github.com/stretchr/testify/mock"
)

// RateLimiter is a mock type for the RateLimiter type
type RateLimiter struct {
	mock.Mock
}

// Allow provides a mock function with given fields: ctx, key
func (_m *RateLimiter) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	ret := _m.Called(ctx, key)

	return ret.Get(0).(ratelimit.Decision), ret.Error(1)
}

// NewRateLimiter creates a new instance of RateLimiter. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewRateLimiter(t interface {
	mock.TestingT
	Cleanup(func())
}) *RateLimiter {
	m := &RateLimiter{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
