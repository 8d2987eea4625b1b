package pointstore

import (
	"context"
	"fmt"
	"time"

	"github.com/gerritlens/gerritlens/internal/parquet"
	"github.com/gerritlens/gerritlens/schema"
)

// ExecuteStoreExport dumps every recorded point to a Parquet file.
// It reads the store bounds from GetStatus and queries each known
// measurement/field pair across the full range.
func ExecuteStoreExport(ctx context.Context, outputFile string) error {
	if outputFile == "" {
		return fmt.Errorf("export requires --output-file")
	}

	store := Manager.GetPointStore()
	status, err := store.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to read store status: %w", err)
	}

	var points []schema.Point
	if status.TotalPoints > 0 {
		// The query range is half-open, so nudge the stop past the newest point.
		tr := schema.TimeRange{Start: status.OldestPoint, Stop: status.NewestPoint.Add(time.Nanosecond)}
		fields := map[string][]string{
			schema.CommitDetailsMeasurement: schema.CommitDetailFields,
			schema.CommitsReviewMeasurement: schema.CommitsReviewFields,
		}
		for _, measurement := range []string{schema.CommitDetailsMeasurement, schema.CommitsReviewMeasurement} {
			for _, field := range fields[measurement] {
				series, err := store.QuerySeries(ctx, measurement, field, tr)
				if err != nil {
					return fmt.Errorf("failed to query %s.%s: %w", measurement, field, err)
				}
				points = append(points, series.Points...)
			}
		}
	}

	if err := parquet.WritePointsParquet(points, outputFile); err != nil {
		return fmt.Errorf("failed to write parquet export: %w", err)
	}

	fmt.Printf("Exported %d points to %s\n", len(points), outputFile)
	return nil
}
