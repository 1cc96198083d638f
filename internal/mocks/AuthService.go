package mocks

import (
	context "context"

	model "github.com/dtroode/contacts-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// AuthService is a mock type for the AuthService type
type AuthService struct {
	mock.Mock
}

// Login provides a mock function with given fields: ctx, email, password
func (_m *AuthService) Login(ctx context.Context, email string, password string) (string, error) {
	ret := _m.Called(ctx, email, password)

	return ret.String(0), ret.Error(1)
}

// Me provides a mock function with given fields: user
func (_m *AuthService) Me(user model.User) model.UserProfile {
	ret := _m.Called(user)

	return ret.Get(0).(model.UserProfile)
}

// Register provides a mock function with given fields: ctx, email, password, isAdmin
func (_m *AuthService) Register(ctx context.Context, email string, password string, isAdmin bool) (model.User, error) {
	ret := _m.Called(ctx, email, password, isAdmin)

	return ret.Get(0).(model.User), ret.Error(1)
}

// RequestPasswordReset provides a mock function with given fields: ctx, email
func (_m *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	ret := _m.Called(ctx, email)

	return ret.Error(0)
}

// ResetPassword provides a mock function with given fields: ctx, token, newPassword
func (_m *AuthService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	ret := _m.Called(ctx, token, newPassword)

	return ret.Error(0)
}

// UpdateAvatar provides a mock function with given fields: ctx, current, avatar
func (_m *AuthService) UpdateAvatar(ctx context.Context, current model.User, avatar model.Upload) (model.User, error) {
	ret := _m.Called(ctx, current, avatar)

	return ret.Get(0).(model.User), ret.Error(1)
}

// Verify provides a mock function with given fields: ctx, token
func (_m *AuthService) Verify(ctx context.Context, token string) (model.User, error) {
	ret := _m.Called(ctx, token)

	return ret.Get(0).(model.User), ret.Error(1)
}

// NewAuthService creates a new instance of AuthService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
