package mocks

import (
	context "context"

	model "github.com/dtroode/contacts-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// ContactStore is a mock type for the ContactStore type
type ContactStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, contact
func (_m *ContactStore) Create(ctx context.Context, contact model.Contact) (model.Contact, error) {
	ret := _m.Called(ctx, contact)

	if rf, ok := ret.Get(0).(func(context.Context, model.Contact) (model.Contact, error)); ok {
		return rf(ctx, contact)
	}
	return ret.Get(0).(model.Contact), ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, id, ownerID
func (_m *ContactStore) Delete(ctx context.Context, id int64, ownerID int64) error {
	ret := _m.Called(ctx, id, ownerID)

	return ret.Error(0)
}

// GetByIDAndOwner provides a mock function with given fields: ctx, id, ownerID
func (_m *ContactStore) GetByIDAndOwner(ctx context.Context, id int64, ownerID int64) (model.Contact, error) {
	ret := _m.Called(ctx, id, ownerID)

	return ret.Get(0).(model.Contact), ret.Error(1)
}

// ListByOwner provides a mock function with given fields: ctx, ownerID
func (_m *ContactStore) ListByOwner(ctx context.Context, ownerID int64) ([]model.Contact, error) {
	ret := _m.Called(ctx, ownerID)

	var r0 []model.Contact
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Contact)
	}
	return r0, ret.Error(1)
}

// Update provides a mock function with given fields: ctx, contact
func (_m *ContactStore) Update(ctx context.Context, contact model.Contact) (model.Contact, error) {
	ret := _m.Called(ctx, contact)

	if rf, ok := ret.Get(0).(func(context.Context, model.Contact) (model.Contact, error)); ok {
		return rf(ctx, contact)
	}
	return ret.Get(0).(model.Contact), ret.Error(1)
}

// NewContactStore creates a new instance of ContactStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewContactStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *ContactStore {
	m := &ContactStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
