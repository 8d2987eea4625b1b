package gerrit

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/schema"
)

// MockGerritReader is a mock implementation of GerritReader for testing.
type MockGerritReader struct {
	mock.Mock
}

var _ contract.GerritReader = &MockGerritReader{} // Compile-time check

// ListProjects implements the GerritReader interface.
func (m *MockGerritReader) ListProjects(ctx context.Context) (map[string]schema.ProjectInfo, error) {
	args := m.Called(ctx)
	projects, _ := args.Get(0).(map[string]schema.ProjectInfo)
	return projects, args.Error(1)
}

// ListActiveProjects implements the GerritReader interface.
func (m *MockGerritReader) ListActiveProjects(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	projects, _ := args.Get(0).([]string)
	return projects, args.Error(1)
}

// ListActiveAccounts implements the GerritReader interface.
func (m *MockGerritReader) ListActiveAccounts(ctx context.Context) ([]schema.AccountInfo, error) {
	args := m.Called(ctx)
	accounts, _ := args.Get(0).([]schema.AccountInfo)
	return accounts, args.Error(1)
}

// ListChangesSince implements the GerritReader interface.
func (m *MockGerritReader) ListChangesSince(ctx context.Context, project string, since time.Time) ([]schema.ChangeInfo, error) {
	args := m.Called(ctx, project, since)
	changes, _ := args.Get(0).([]schema.ChangeInfo)
	return changes, args.Error(1)
}
