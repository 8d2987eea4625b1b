package pointstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerritlens/gerritlens/schema"
)

// TestMigrateStoreSQLite tests the up and down migration paths.
func TestMigrateStoreSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "points.db")

	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))
	// Running again is a no-op.
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))
	// Roll everything back.
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 0))
}

// TestMigrateStoreAfterRuntimeSetup tests that migrations apply cleanly on a
// database the store already initialized and wrote to.
func TestMigrateStoreAfterRuntimeSetup(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "points.db")

	store, err := NewSQLPointStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.WritePoints(context.Background(), []schema.Point{{
		Measurement: schema.CommitDetailsMeasurement,
		Field:       schema.InsertionsField,
		Time:        time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		Value:       schema.Number(5),
	}}))
	require.NoError(t, store.Close())

	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))
	// Running again is still a no-op, never a dirty state.
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))
}

// TestPointsTableDDL tests that every SQL backend resolves the shared schema
// DDL and that unsupported backends are rejected.
func TestPointsTableDDL(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{
		schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend,
	} {
		ddl, err := pointsTableDDL(backend)
		require.NoError(t, err, backend)
		assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS gerritlens_points", backend)
		assert.Contains(t, ddl, "idx_points_lookup", backend)
	}

	_, err := pointsTableDDL(schema.InfluxBackend)
	assert.Error(t, err)
}

// TestMigrateStoreUnsupportedBackends tests backend validation.
func TestMigrateStoreUnsupportedBackends(t *testing.T) {
	assert.Error(t, MigrateStore(schema.NoneBackend, "", -1))
	assert.Error(t, MigrateStore(schema.InfluxBackend, "http://localhost:8086", -1))
	assert.Error(t, MigrateStore(schema.DatabaseBackend("oracle"), "", -1))
}
