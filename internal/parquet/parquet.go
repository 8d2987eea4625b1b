// Package parquet exports gerritlens results to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/gerritlens/gerritlens/schema"
)

// ReportRow is one report cell in long form. Joined tables have a dynamic
// column set, so each (window, column) pair becomes its own row.
type ReportRow struct {
	// Title is the report this row belongs to
	Title string `parquet:"title,snappy"`

	// WindowStart is the start of the aggregation window
	WindowStart time.Time `parquet:"window_start,snappy"`

	// Column is the renamed series label
	Column string `parquet:"column,snappy"`

	// Value is the reduced value for this window and column
	Value float64 `parquet:"value,snappy"`
}

// SeriesRow is one aggregated window of a single series.
type SeriesRow struct {
	// Measurement is the source measurement name
	Measurement string `parquet:"measurement,snappy"`

	// Field is the source field name
	Field string `parquet:"field,snappy"`

	// Reducer is the reduction applied per window
	Reducer string `parquet:"reducer,snappy"`

	// WindowStart is the start of the aggregation window
	WindowStart time.Time `parquet:"window_start,snappy"`

	// Value is the reduced value
	Value float64 `parquet:"value,snappy"`
}

// PointRow is one raw stored point, used by the export command.
type PointRow struct {
	// Measurement is the measurement name
	Measurement string `parquet:"measurement,snappy"`

	// Field is the field name
	Field string `parquet:"field,snappy"`

	// Time is the point timestamp
	Time time.Time `parquet:"time,snappy"`

	// Kind is the value kind (numeric, text, timestamp)
	Kind string `parquet:"kind,snappy"`

	// NumValue holds numeric values (nullable)
	NumValue *float64 `parquet:"num_value,optional,snappy"`

	// TextValue holds text values (nullable)
	TextValue *string `parquet:"text_value,optional,snappy"`

	// TimeValue holds time values (nullable)
	TimeValue *time.Time `parquet:"time_value,optional,snappy"`
}

// WriteReportParquet writes a joined report to a Parquet file in long form.
func WriteReportParquet(result schema.ReportResult, outputPath string) error {
	rows := make([]ReportRow, 0, len(result.Table.Rows)*len(result.Table.Columns))
	for _, r := range result.Table.Rows {
		for i, col := range result.Table.Columns {
			rows = append(rows, ReportRow{
				Title:       result.Title,
				WindowStart: r.Start,
				Column:      col,
				Value:       r.Values[i],
			})
		}
	}
	return writeParquetFile(rows, outputPath)
}

// WriteSeriesParquet writes an aggregated series to a Parquet file.
func WriteSeriesParquet(result schema.SeriesResult, outputPath string) error {
	rows := make([]SeriesRow, 0, len(result.Series.Points))
	for _, p := range result.Series.Points {
		rows = append(rows, SeriesRow{
			Measurement: result.Series.Measurement,
			Field:       result.Series.Field,
			Reducer:     string(result.Series.Reducer),
			WindowStart: p.Start,
			Value:       p.Value,
		})
	}
	return writeParquetFile(rows, outputPath)
}

// WritePointsParquet writes raw points to a Parquet file.
func WritePointsParquet(points []schema.Point, outputPath string) error {
	rows := make([]PointRow, 0, len(points))
	for _, p := range points {
		row := PointRow{
			Measurement: p.Measurement,
			Field:       p.Field,
			Time:        p.Time,
			Kind:        string(p.Value.Kind),
		}
		switch p.Value.Kind {
		case schema.NumericKind:
			num := p.Value.Num
			row.NumValue = &num
		case schema.TextKind:
			text := p.Value.Text
			row.TextValue = &text
		case schema.TimeKind:
			ts := p.Value.Time
			row.TimeValue = &ts
		}
		rows = append(rows, row)
	}
	return writeParquetFile(rows, outputPath)
}

// writeParquetFile writes rows to outputPath using struct schema inference.
func writeParquetFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
