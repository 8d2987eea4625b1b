package pointstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/schema"
)

// newSQLiteStore creates a store backed by a throwaway SQLite file.
func newSQLiteStore(t *testing.T) contract.PointStore {
	t.Helper()
	store, err := NewSQLPointStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "points.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestWriteAndQueryRoundTrip tests typed values surviving storage.
func TestWriteAndQueryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	submitted := base.Add(30 * time.Hour)
	points := []schema.Point{
		{Measurement: schema.CommitDetailsMeasurement, Field: schema.StatusField, Time: base, Value: schema.TextValue("MERGED")},
		{Measurement: schema.CommitDetailsMeasurement, Field: schema.SubmittedOnField, Time: base, Value: schema.Timestamp(submitted)},
		{Measurement: schema.CommitDetailsMeasurement, Field: schema.InsertionsField, Time: base, Value: schema.Number(42)},
	}
	require.NoError(t, store.WritePoints(ctx, points))

	tr := schema.TimeRange{Start: base.Add(-time.Hour), Stop: base.Add(time.Hour)}

	series, err := store.QuerySeries(ctx, schema.CommitDetailsMeasurement, schema.StatusField, tr)
	require.NoError(t, err)
	require.Len(t, series.Points, 1)
	assert.Equal(t, schema.TextValue("MERGED"), series.Points[0].Value)
	assert.Equal(t, base, series.Points[0].Time)

	series, err = store.QuerySeries(ctx, schema.CommitDetailsMeasurement, schema.SubmittedOnField, tr)
	require.NoError(t, err)
	require.Len(t, series.Points, 1)
	assert.Equal(t, schema.TimeKind, series.Points[0].Value.Kind)
	assert.Equal(t, submitted, series.Points[0].Value.Time)

	series, err = store.QuerySeries(ctx, schema.CommitDetailsMeasurement, schema.InsertionsField, tr)
	require.NoError(t, err)
	require.Len(t, series.Points, 1)
	assert.Equal(t, 42.0, series.Points[0].Value.Num)
}

// TestQuerySeriesHalfOpenRange tests the [start, stop) boundary behavior.
func TestQuerySeriesHalfOpenRange(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	start := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	stop := start.Add(24 * time.Hour)
	points := []schema.Point{
		{Measurement: schema.CommitDetailsMeasurement, Field: schema.InsertionsField, Time: start.Add(-time.Nanosecond), Value: schema.Number(1)},
		{Measurement: schema.CommitDetailsMeasurement, Field: schema.InsertionsField, Time: start, Value: schema.Number(2)},
		{Measurement: schema.CommitDetailsMeasurement, Field: schema.InsertionsField, Time: stop.Add(-time.Nanosecond), Value: schema.Number(3)},
		{Measurement: schema.CommitDetailsMeasurement, Field: schema.InsertionsField, Time: stop, Value: schema.Number(4)},
	}
	require.NoError(t, store.WritePoints(ctx, points))

	series, err := store.QuerySeries(ctx, schema.CommitDetailsMeasurement, schema.InsertionsField, schema.TimeRange{Start: start, Stop: stop})
	require.NoError(t, err)
	require.Len(t, series.Points, 2)
	assert.Equal(t, 2.0, series.Points[0].Value.Num)
	assert.Equal(t, 3.0, series.Points[1].Value.Num)
}

// TestQuerySeriesOrdering tests that results come back ascending regardless
// of insert order.
func TestQuerySeriesOrdering(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	points := []schema.Point{
		{Measurement: schema.CommitsReviewMeasurement, Field: schema.MergedCommitsField, Time: base.Add(2 * time.Hour), Value: schema.Number(3)},
		{Measurement: schema.CommitsReviewMeasurement, Field: schema.MergedCommitsField, Time: base, Value: schema.Number(1)},
		{Measurement: schema.CommitsReviewMeasurement, Field: schema.MergedCommitsField, Time: base.Add(time.Hour), Value: schema.Number(2)},
	}
	require.NoError(t, store.WritePoints(ctx, points))

	series, err := store.QuerySeries(ctx, schema.CommitsReviewMeasurement, schema.MergedCommitsField, schema.TimeRange{Start: base, Stop: base.Add(3 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, series.Points, 3)
	for i := 1; i < len(series.Points); i++ {
		assert.True(t, series.Points[i-1].Time.Before(series.Points[i].Time))
	}
}

// TestQuerySeriesUnknownMeasurement tests the typed error contract.
func TestQuerySeriesUnknownMeasurement(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	_, err := store.QuerySeries(ctx, "bogus_measurement", schema.StatusField, schema.TimeRange{})
	assert.ErrorIs(t, err, contract.ErrUnknownMeasurement)
}

// TestQuerySeriesEmptyRange tests that an empty range yields an empty series.
func TestQuerySeriesEmptyRange(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	series, err := store.QuerySeries(ctx, schema.CommitDetailsMeasurement, schema.StatusField, schema.TimeRange{})
	require.NoError(t, err)
	assert.Empty(t, series.Points)
	assert.Equal(t, schema.CommitDetailsMeasurement, series.Measurement)
}

// TestListMeasurementsAndStatus tests the bookkeeping queries.
func TestListMeasurementsAndStatus(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	points := []schema.Point{
		{Measurement: schema.CommitDetailsMeasurement, Field: schema.InsertionsField, Time: base, Value: schema.Number(1)},
		{Measurement: schema.CommitsReviewMeasurement, Field: schema.MergedCommitsField, Time: base.Add(time.Hour), Value: schema.Number(2)},
	}
	require.NoError(t, store.WritePoints(ctx, points))

	measurements, err := store.ListMeasurements(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{schema.CommitDetailsMeasurement, schema.CommitsReviewMeasurement}, measurements)

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(2), status.TotalPoints)
	assert.Equal(t, base, status.OldestPoint)
	assert.Equal(t, base.Add(time.Hour), status.NewestPoint)
}

// TestNoneBackendIsNoop tests the disabled persistence path.
func TestNoneBackendIsNoop(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLPointStore(schema.NoneBackend, "")
	require.NoError(t, err)

	require.NoError(t, store.WritePoints(ctx, []schema.Point{
		{Measurement: schema.CommitDetailsMeasurement, Field: schema.InsertionsField, Time: time.Now(), Value: schema.Number(1)},
	}))

	series, err := store.QuerySeries(ctx, schema.CommitDetailsMeasurement, schema.InsertionsField, schema.TimeRange{})
	require.NoError(t, err)
	assert.Empty(t, series.Points)

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

// TestUnsupportedBackend tests backend validation.
func TestUnsupportedBackend(t *testing.T) {
	_, err := NewSQLPointStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}
