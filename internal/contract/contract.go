// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/gerritlens/gerritlens/schema"
)

// ErrUnknownMeasurement is returned when a query names a measurement that
// gerritlens never records.
var ErrUnknownMeasurement = errors.New("unknown measurement")

// PointStore defines the operations gerritlens needs from a time-series
// point store. This allows the core logic to be tested without a live
// database behind it.
type PointStore interface {
	// WritePoints records a batch of points. Points are immutable once written.
	WritePoints(ctx context.Context, points []schema.Point) error

	// QuerySeries returns all points for measurement+field inside the range,
	// ascending by timestamp. An empty range yields an empty series, not an
	// error. An unknown measurement yields ErrUnknownMeasurement.
	QuerySeries(ctx context.Context, measurement, field string, tr schema.TimeRange) (schema.Series, error)

	// ListMeasurements returns the distinct measurement names present.
	ListMeasurements(ctx context.Context) ([]string, error)

	// GetStatus returns status information about the point store.
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for accessing the configured point store.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetPointStore() PointStore
}

// GerritReader defines the read operations used against a Gerrit server.
// This allows collection logic to be tested against an httptest server or
// a mock instead of a live Gerrit instance.
type GerritReader interface {
	// ListProjects returns all projects keyed by name.
	ListProjects(ctx context.Context) (map[string]schema.ProjectInfo, error)

	// ListActiveProjects returns the names of projects in ACTIVE state.
	ListActiveProjects(ctx context.Context) ([]string, error)

	// ListActiveAccounts returns detailed info for all active accounts.
	ListActiveAccounts(ctx context.Context) ([]schema.AccountInfo, error)

	// ListChangesSince returns all changes for a project created after the
	// given time. An empty project matches changes across all projects.
	ListChangesSince(ctx context.Context, project string, since time.Time) ([]schema.ChangeInfo, error)
}
