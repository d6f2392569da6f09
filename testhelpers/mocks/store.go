package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of core.Store.
type MockStore struct {
	mock.Mock
}

func NewMockStore(t interface {
	mock.TestingT
	Cleanup(func())
},
) *MockStore {
	m := &MockStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockStore) Get(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)

	return args.Get(0).(int64), args.Error(1) //nolint:forcetypeassert
}

func (m *MockStore) Set(ctx context.Context, key string, value int64) error {
	args := m.Called(ctx, key, value)

	return args.Error(0)
}

func (m *MockStore) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	args := m.Called(ctx, key, delta)

	return args.Get(0).(int64), args.Error(1) //nolint:forcetypeassert
}

func (m *MockStore) HealthCheck() error {
	args := m.Called()

	return args.Error(0)
}

func (m *MockStore) Shutdown() error {
	args := m.Called()

	return args.Error(0)
}
