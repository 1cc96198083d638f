package mocks

import (
	context "context"
	io "io"

	mock "github.com/stretchr/testify/mock"
)

// MediaHost is a mock type for the MediaHost type
type MediaHost struct {
	mock.Mock
}

// Delete provides a mock function with given fields: ctx, key
func (_m *MediaHost) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)

	return ret.Error(0)
}

// KeyFromURL provides a mock function with given fields: publicURL
func (_m *MediaHost) KeyFromURL(publicURL string) (string, bool) {
	ret := _m.Called(publicURL)

	return ret.String(0), ret.Bool(1)
}

// Upload provides a mock function with given fields: ctx, key, reader, size, contentType
func (_m *MediaHost) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	ret := _m.Called(ctx, key, reader, size, contentType)

	return ret.String(0), ret.Error(1)
}

// NewMediaHost creates a new instance of MediaHost. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMediaHost(t interface {
	mock.TestingT
	Cleanup(func())
}) *MediaHost {
	m := &MediaHost{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
