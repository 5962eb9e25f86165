package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	envelope "user-admin-console/internal/common/envelope"
	models "user-admin-console/internal/features/user/models"
)

// UserAPI is a mock type for the UserAPI type
type UserAPI struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx, q
func (_m *UserAPI) List(ctx context.Context, q models.ListQuery) (envelope.Envelope[models.PagedResponse[models.User]], error) {
	ret := _m.Called(ctx, q)

	var r0 envelope.Envelope[models.PagedResponse[models.User]]
	if rf, ok := ret.Get(0).(func(context.Context, models.ListQuery) envelope.Envelope[models.PagedResponse[models.User]]); ok {
		r0 = rf(ctx, q)
	} else {
		r0 = ret.Get(0).(envelope.Envelope[models.PagedResponse[models.User]])
	}

	return r0, ret.Error(1)
}

// Stats provides a mock function with given fields: ctx
func (_m *UserAPI) Stats(ctx context.Context) (envelope.Envelope[models.UserStats], error) {
	ret := _m.Called(ctx)

	var r0 envelope.Envelope[models.UserStats]
	if rf, ok := ret.Get(0).(func(context.Context) envelope.Envelope[models.UserStats]); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(envelope.Envelope[models.UserStats])
	}

	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, req
func (_m *UserAPI) Create(ctx context.Context, req models.CreateUserRequest) (envelope.Envelope[models.User], error) {
	ret := _m.Called(ctx, req)

	var r0 envelope.Envelope[models.User]
	if rf, ok := ret.Get(0).(func(context.Context, models.CreateUserRequest) envelope.Envelope[models.User]); ok {
		r0 = rf(ctx, req)
	} else {
		r0 = ret.Get(0).(envelope.Envelope[models.User])
	}

	return r0, ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, id, soft
func (_m *UserAPI) Delete(ctx context.Context, id string, soft bool) (envelope.Envelope[string], error) {
	ret := _m.Called(ctx, id, soft)

	var r0 envelope.Envelope[string]
	if rf, ok := ret.Get(0).(func(context.Context, string, bool) envelope.Envelope[string]); ok {
		r0 = rf(ctx, id, soft)
	} else {
		r0 = ret.Get(0).(envelope.Envelope[string])
	}

	return r0, ret.Error(1)
}

// NewUserAPI creates a new instance of UserAPI. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewUserAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserAPI {
	mock := &UserAPI{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
