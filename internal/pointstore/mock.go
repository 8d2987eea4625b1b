package pointstore

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetPointStore implements the StoreManager interface.
func (m *MockStoreManager) GetPointStore() contract.PointStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.PointStore)
	return store
}

// MockPointStore is a mock implementation of PointStore for testing.
type MockPointStore struct {
	mock.Mock
}

var _ contract.PointStore = &MockPointStore{} // Compile-time check

// WritePoints implements the PointStore interface.
func (m *MockPointStore) WritePoints(ctx context.Context, points []schema.Point) error {
	args := m.Called(ctx, points)
	return args.Error(0)
}

// QuerySeries implements the PointStore interface.
func (m *MockPointStore) QuerySeries(ctx context.Context, measurement, field string, tr schema.TimeRange) (schema.Series, error) {
	args := m.Called(ctx, measurement, field, tr)
	return args.Get(0).(schema.Series), args.Error(1)
}

// ListMeasurements implements the PointStore interface.
func (m *MockPointStore) ListMeasurements(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	measurements, _ := args.Get(0).([]string)
	return measurements, args.Error(1)
}

// GetStatus implements the PointStore interface.
func (m *MockPointStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the PointStore interface.
func (m *MockPointStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
