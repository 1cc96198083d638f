package mocks

import (
	context "context"

	model "github.com/dtroode/contacts-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// ContactService is a mock type for the ContactService type
type ContactService struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, ownerID, in
func (_m *ContactService) Create(ctx context.Context, ownerID int64, in model.ContactInput) (model.Contact, error) {
	ret := _m.Called(ctx, ownerID, in)

	return ret.Get(0).(model.Contact), ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, ownerID, id
func (_m *ContactService) Delete(ctx context.Context, ownerID int64, id int64) (model.Contact, error) {
	ret := _m.Called(ctx, ownerID, id)

	return ret.Get(0).(model.Contact), ret.Error(1)
}

// Get provides a mock function with given fields: ctx, ownerID, id
func (_m *ContactService) Get(ctx context.Context, ownerID int64, id int64) (model.Contact, error) {
	ret := _m.Called(ctx, ownerID, id)

	return ret.Get(0).(model.Contact), ret.Error(1)
}

// List provides a mock function with given fields: ctx, ownerID
func (_m *ContactService) List(ctx context.Context, ownerID int64) ([]model.Contact, error) {
	ret := _m.Called(ctx, ownerID)

	var r0 []model.Contact
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Contact)
	}
	return r0, ret.Error(1)
}

// Update provides a mock function with given fields: ctx, ownerID, id, in
func (_m *ContactService) Update(ctx context.Context, ownerID int64, id int64, in model.ContactInput) (model.Contact, error) {
	ret := _m.Called(ctx, ownerID, id, in)

	return ret.Get(0).(model.Contact), ret.Error(1)
}

// NewContactService creates a new instance of ContactService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewContactService(t interface {
	mock.TestingT
	Cleanup(func())
}) *ContactService {
	m := &ContactService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
