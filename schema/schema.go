// Package schema holds the shared data model for gerritlens.
package schema

import "time"

// FieldValue is a typed value carried by a Point. Exactly one of the payload
// fields is meaningful, selected by Kind.
type FieldValue struct {
	Kind ValueKind `json:"kind"`
	Num  float64   `json:"num,omitempty"`
	Text string    `json:"text,omitempty"`
	Time time.Time `json:"time,omitzero"`
}

// Number builds a numeric FieldValue.
func Number(v float64) FieldValue {
	return FieldValue{Kind: NumericKind, Num: v}
}

// TextValue builds a text FieldValue.
func TextValue(s string) FieldValue {
	return FieldValue{Kind: TextKind, Text: s}
}

// Timestamp builds a time-valued FieldValue.
func Timestamp(t time.Time) FieldValue {
	return FieldValue{Kind: TimeKind, Time: t}
}

// Point is a single recorded observation. Immutable once recorded.
type Point struct {
	Measurement string     `json:"measurement"`
	Field       string     `json:"field"`
	Time        time.Time  `json:"time"`
	Value       FieldValue `json:"value"`
}

// Series is an ordered sequence of points sharing a measurement and field,
// ascending by timestamp.
type Series struct {
	Measurement string  `json:"measurement"`
	Field       string  `json:"field"`
	Points      []Point `json:"points"`
}

// TimeRange represents the half-open interval [Start, Stop) for queries.
type TimeRange struct {
	Start time.Time `json:"start"`
	Stop  time.Time `json:"stop"`
}

// Contains reports whether t falls inside the range.
func (tr TimeRange) Contains(t time.Time) bool {
	return !t.Before(tr.Start) && t.Before(tr.Stop)
}

// AggregatedPoint is one reduced value for a fixed-width window.
type AggregatedPoint struct {
	Start time.Time `json:"start"` // window start
	Value float64   `json:"value"`
}

// AggregatedSeries is a Series partitioned into fixed-width windows and
// reduced per window, ordered by window start.
type AggregatedSeries struct {
	Measurement string            `json:"measurement"`
	Field       string            `json:"field"`
	Window      time.Duration     `json:"window"`
	Reducer     Reducer           `json:"reducer"`
	Points      []AggregatedPoint `json:"points"`
}

// Timestamps returns the window starts of all aggregated points.
func (s AggregatedSeries) Timestamps() []time.Time {
	out := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Start
	}
	return out
}

// JoinedRow is a single row of a JoinedTable, keyed by window start.
type JoinedRow struct {
	Start  time.Time `json:"start"`
	Values []float64 `json:"values"` // parallel to JoinedTable.Columns
}

// JoinedTable is the inner join of two or more aggregated series on their
// window-start timestamps. Only timestamps present in every input survive.
type JoinedTable struct {
	Columns []string    `json:"columns"`
	Rows    []JoinedRow `json:"rows"`
}

// ReportResult holds the joined output of a report run.
type ReportResult struct {
	Title string      `json:"title"`
	Range TimeRange   `json:"range"`
	Table JoinedTable `json:"table"`
}

// SeriesResult holds the output of a single-series aggregation run.
type SeriesResult struct {
	Range  TimeRange        `json:"range"`
	Series AggregatedSeries `json:"series"`
}

// CollectSummary reports what a collect run ingested.
type CollectSummary struct {
	Projects      int       `json:"projects"`
	Changes       int       `json:"changes"`
	Contributors  int       `json:"contributors"`
	PointsWritten int       `json:"points_written"`
	WindowStart   time.Time `json:"window_start"`
	WindowStop    time.Time `json:"window_stop"`
}
