// Package core has core logic for recording, aggregating and joining
// metric series.
package core

import (
	"fmt"
	"time"

	"github.com/gerritlens/gerritlens/schema"
)

// FieldTypeError reports a numeric reduction applied to a non-numeric field.
type FieldTypeError struct {
	Measurement string
	Field       string
	Kind        schema.ValueKind
	Reducer     schema.Reducer
}

// Error implements the error interface.
func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("cannot apply %s to %s.%s: field holds %s values", e.Reducer, e.Measurement, e.Field, e.Kind)
}

// Aggregate partitions a series into fixed-width windows aligned to the
// range start and reduces each window. Empty windows are omitted when fill
// is nil and emitted with *fill otherwise. Points outside [tr.Start, tr.Stop)
// are ignored.
func Aggregate(series schema.Series, tr schema.TimeRange, window time.Duration, reducer schema.Reducer, fill *float64) (schema.AggregatedSeries, error) {
	out := schema.AggregatedSeries{
		Measurement: series.Measurement,
		Field:       series.Field,
		Window:      window,
		Reducer:     reducer,
	}

	if window <= 0 {
		return out, fmt.Errorf("window must be positive (received %s)", window)
	}
	if !tr.Start.Before(tr.Stop) {
		return out, fmt.Errorf("start time %s must be before stop time %s", tr.Start, tr.Stop)
	}
	if _, ok := schema.ValidReducers[reducer]; !ok {
		return out, fmt.Errorf("invalid reducer %q", reducer)
	}

	// --- 1. Bucket points by window index ---
	buckets := map[int64][]schema.Point{}
	for _, p := range series.Points {
		if !tr.Contains(p.Time) {
			continue
		}
		idx := int64(p.Time.Sub(tr.Start) / window)
		buckets[idx] = append(buckets[idx], p)
	}

	// --- 2. Walk windows in order, reducing each one ---
	numWindows := int64((tr.Stop.Sub(tr.Start) + window - 1) / window)
	for idx := range numWindows {
		points, ok := buckets[idx]
		if !ok {
			if fill == nil {
				continue
			}
			out.Points = append(out.Points, schema.AggregatedPoint{
				Start: tr.Start.Add(time.Duration(idx) * window),
				Value: *fill,
			})
			continue
		}

		value, err := reduce(series, points, reducer)
		if err != nil {
			return schema.AggregatedSeries{Measurement: series.Measurement, Field: series.Field, Window: window, Reducer: reducer}, err
		}
		out.Points = append(out.Points, schema.AggregatedPoint{
			Start: tr.Start.Add(time.Duration(idx) * window),
			Value: value,
		})
	}

	return out, nil
}

// reduce collapses one window of points into a single value. Count accepts
// any value kind; sum and mean require numeric values.
func reduce(series schema.Series, points []schema.Point, reducer schema.Reducer) (float64, error) {
	if reducer == schema.CountReducer {
		return float64(len(points)), nil
	}

	var total float64
	for _, p := range points {
		if p.Value.Kind != schema.NumericKind {
			return 0, &FieldTypeError{
				Measurement: series.Measurement,
				Field:       series.Field,
				Kind:        p.Value.Kind,
				Reducer:     reducer,
			}
		}
		total += p.Value.Num
	}

	if reducer == schema.MeanReducer {
		return total / float64(len(points)), nil
	}
	return total, nil
}
