package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/internal/pointstore"
	"github.com/gerritlens/gerritlens/schema"
)

// reportConfig returns a config spanning two days with 24h windows.
func reportConfig() *contract.Config {
	return &contract.Config{
		StartTime:   rangeStart,
		EndTime:     rangeStart.Add(48 * time.Hour),
		Window:      24 * time.Hour,
		Reducer:     schema.CountReducer,
		ResultLimit: contract.DefaultResultLimit,
	}
}

// storedSeries builds a stored series response for the mock.
func storedSeries(measurement, field string, values map[int]schema.FieldValue) schema.Series {
	s := schema.Series{Measurement: measurement, Field: field}
	for h, v := range values {
		s.Points = append(s.Points, schema.Point{
			Measurement: measurement,
			Field:       field,
			Time:        rangeStart.Add(time.Duration(h) * time.Hour),
			Value:       v,
		})
	}
	return s
}

// TestRunReportCoreActivity tests the activity report assembly.
func TestRunReportCoreActivity(t *testing.T) {
	cfg := reportConfig()
	tr := cfg.Range()

	store := &pointstore.MockPointStore{}
	store.On("QuerySeries", mock.Anything, schema.CommitDetailsMeasurement, schema.StatusField, tr).
		Return(storedSeries(schema.CommitDetailsMeasurement, schema.StatusField, map[int]schema.FieldValue{
			1: schema.TextValue("MERGED"),
			2: schema.TextValue("NEW"),
		}), nil)
	store.On("QuerySeries", mock.Anything, schema.CommitDetailsMeasurement, schema.InsertionsField, tr).
		Return(storedSeries(schema.CommitDetailsMeasurement, schema.InsertionsField, map[int]schema.FieldValue{
			1: schema.Number(100),
			2: schema.Number(20),
		}), nil)
	store.On("QuerySeries", mock.Anything, schema.CommitDetailsMeasurement, schema.DeletionsField, tr).
		Return(storedSeries(schema.CommitDetailsMeasurement, schema.DeletionsField, map[int]schema.FieldValue{
			1: schema.Number(10),
		}), nil)

	result, err := runReportCore(context.Background(), cfg, store, "Commit Activity", []seriesSpec{
		{schema.CommitDetailsMeasurement, schema.StatusField, "Commits", schema.CountReducer, nil},
		{schema.CommitDetailsMeasurement, schema.InsertionsField, "Insertions", schema.SumReducer, zeroFill()},
		{schema.CommitDetailsMeasurement, schema.DeletionsField, "Deletions", schema.SumReducer, zeroFill()},
	})
	require.NoError(t, err)

	assert.Equal(t, "Commit Activity", result.Title)
	assert.Equal(t, []string{"Commits", "Insertions", "Deletions"}, result.Table.Columns)
	// Day one has commits; day two only exists in the filled sum columns, so
	// the inner join keeps day one alone.
	require.Len(t, result.Table.Rows, 1)
	assert.Equal(t, rangeStart, result.Table.Rows[0].Start)
	assert.Equal(t, []float64{2, 120, 10}, result.Table.Rows[0].Values)

	store.AssertExpectations(t)
}

// TestRunReportCoreResultLimit tests tail-biased row limiting.
func TestRunReportCoreResultLimit(t *testing.T) {
	cfg := reportConfig()
	cfg.ResultLimit = 1
	tr := cfg.Range()

	values := map[int]schema.FieldValue{1: schema.Number(1), 25: schema.Number(2)}
	store := &pointstore.MockPointStore{}
	store.On("QuerySeries", mock.Anything, schema.CommitDetailsMeasurement, schema.InsertionsField, tr).
		Return(storedSeries(schema.CommitDetailsMeasurement, schema.InsertionsField, values), nil)
	store.On("QuerySeries", mock.Anything, schema.CommitDetailsMeasurement, schema.DeletionsField, tr).
		Return(storedSeries(schema.CommitDetailsMeasurement, schema.DeletionsField, values), nil)

	result, err := runReportCore(context.Background(), cfg, store, "Commit Activity", []seriesSpec{
		{schema.CommitDetailsMeasurement, schema.InsertionsField, "Insertions", schema.SumReducer, nil},
		{schema.CommitDetailsMeasurement, schema.DeletionsField, "Deletions", schema.SumReducer, nil},
	})
	require.NoError(t, err)

	// The most recent row wins when trimming.
	require.Len(t, result.Table.Rows, 1)
	assert.Equal(t, rangeStart.Add(24*time.Hour), result.Table.Rows[0].Start)
}

// TestRunSeriesCore tests single-series aggregation.
func TestRunSeriesCore(t *testing.T) {
	cfg := reportConfig()
	cfg.Measurement = schema.CommitsReviewMeasurement
	cfg.Field = schema.MergedCommitsField
	cfg.Reducer = schema.SumReducer

	store := &pointstore.MockPointStore{}
	store.On("QuerySeries", mock.Anything, schema.CommitsReviewMeasurement, schema.MergedCommitsField, cfg.Range()).
		Return(storedSeries(schema.CommitsReviewMeasurement, schema.MergedCommitsField, map[int]schema.FieldValue{
			1:  schema.Number(3),
			25: schema.Number(5),
		}), nil)

	result, err := runSeriesCore(context.Background(), cfg, store)
	require.NoError(t, err)

	require.Len(t, result.Series.Points, 2)
	assert.Equal(t, 3.0, result.Series.Points[0].Value)
	assert.Equal(t, 5.0, result.Series.Points[1].Value)
	assert.Equal(t, schema.SumReducer, result.Series.Reducer)
}

// TestRunSeriesCoreMissingSelection tests the required flag check.
func TestRunSeriesCoreMissingSelection(t *testing.T) {
	cfg := reportConfig()
	_, err := runSeriesCore(context.Background(), cfg, &pointstore.MockPointStore{})
	assert.ErrorContains(t, err, "--measurement")
}
