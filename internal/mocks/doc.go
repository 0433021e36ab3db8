// Package mocks provides shared test doubles for the store and auth interfaces.
//
// The store mocks are built on testify/mock so tests can set expectations
// per call:
//
//	users := new(mocks.UserStore)
//	users.On("GetByID", mock.Anything, id).Return(user, nil)
//	defer users.AssertExpectations(t)
//
// The password mock uses function fields for tests that only need to swap
// behavior.
package mocks
