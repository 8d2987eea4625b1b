package core

import (
	"context"
	"fmt"
	"time"

	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/internal/outwriter"
	"github.com/gerritlens/gerritlens/internal/pointstore"
	"github.com/gerritlens/gerritlens/schema"
)

// seriesSpec describes one column of a report: which stored series to
// query and how to reduce it per window.
type seriesSpec struct {
	measurement string
	field       string
	column      string
	reducer     schema.Reducer
	fill        *float64
}

// zeroFill returns the default fill for additive columns.
func zeroFill() *float64 {
	zero := 0.0
	return &zero
}

// fillOrZero prefers the user-configured fill, defaulting to 0 so that
// quiet windows still join against busier columns.
func fillOrZero(cfg *contract.Config) *float64 {
	if cfg.Fill != nil {
		return cfg.Fill
	}
	return zeroFill()
}

// activitySpecs returns the column specs for the activity report.
func activitySpecs(cfg *contract.Config) []seriesSpec {
	return []seriesSpec{
		{schema.CommitDetailsMeasurement, schema.StatusField, "Commits", schema.CountReducer, cfg.Fill},
		{schema.CommitDetailsMeasurement, schema.InsertionsField, "Insertions", schema.SumReducer, fillOrZero(cfg)},
		{schema.CommitDetailsMeasurement, schema.DeletionsField, "Deletions", schema.SumReducer, fillOrZero(cfg)},
	}
}

// reviewSpecs returns the column specs for the review report.
func reviewSpecs(cfg *contract.Config) []seriesSpec {
	return []seriesSpec{
		{schema.CommitsReviewMeasurement, schema.MergedCommitsField, "Merged", schema.SumReducer, fillOrZero(cfg)},
		{schema.CommitsReviewMeasurement, schema.AverageReviewTimeField, "AvgReviewHours", schema.MeanReducer, fillOrZero(cfg)},
		{schema.CommitsReviewMeasurement, schema.CommentsPerCommitField, "CommentsPerCommit", schema.MeanReducer, fillOrZero(cfg)},
	}
}

// GetActivityReportResults builds the daily commit activity report.
// Exposed for the MCP server.
func GetActivityReportResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.ReportResult, error) {
	return runReportCore(ctx, cfg, mgr.GetPointStore(), "Commit Activity", activitySpecs(cfg))
}

// GetReviewReportResults builds the review health report.
// Exposed for the MCP server.
func GetReviewReportResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.ReportResult, error) {
	return runReportCore(ctx, cfg, mgr.GetPointStore(), "Review Health", reviewSpecs(cfg))
}

// GetSeriesResults aggregates a single measurement/field.
// Exposed for the MCP server.
func GetSeriesResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.SeriesResult, error) {
	return runSeriesCore(ctx, cfg, mgr.GetPointStore())
}

// ExecuteActivityReport reports daily commit counts and churn from the
// commit_details measurement. It serves as the main entry point for the
// 'report activity' command.
func ExecuteActivityReport(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	result, err := GetActivityReportResults(ctx, cfg, pointstore.Manager)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintReportResults(result, cfg, duration)
}

// ExecuteReviewReport reports review health from the commits_review
// measurement. It serves as the main entry point for the 'report review'
// command.
func ExecuteReviewReport(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	result, err := GetReviewReportResults(ctx, cfg, pointstore.Manager)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintReviewResults(result, cfg, duration)
}

// ExecuteSeries aggregates a single measurement/field with the configured
// reducer. It serves as the main entry point for the 'series' command.
func ExecuteSeries(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	result, err := GetSeriesResults(ctx, cfg, pointstore.Manager)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintSeriesResults(result, cfg, duration)
}

// runReportCore queries, aggregates and joins the given series specs over
// the configured time range.
func runReportCore(ctx context.Context, cfg *contract.Config, store contract.PointStore, title string, specs []seriesSpec) (schema.ReportResult, error) {
	tr := cfg.Range()
	result := schema.ReportResult{Title: title, Range: tr}

	// --- 1. Query and aggregate each column ---
	aggregated := make([]schema.AggregatedSeries, 0, len(specs))
	columns := make([]string, 0, len(specs))
	for _, spec := range specs {
		series, err := store.QuerySeries(ctx, spec.measurement, spec.field, tr)
		if err != nil {
			return result, err
		}
		agg, err := Aggregate(series, tr, cfg.Window, spec.reducer, spec.fill)
		if err != nil {
			return result, err
		}
		aggregated = append(aggregated, agg)
		columns = append(columns, spec.column)
	}

	// --- 2. Join into a single table ---
	table, err := InnerJoin(aggregated, columns)
	if err != nil {
		return result, err
	}
	result.Table = table

	// --- 3. Enforce the result limit ---
	if len(result.Table.Rows) > cfg.ResultLimit {
		result.Table.Rows = result.Table.Rows[len(result.Table.Rows)-cfg.ResultLimit:]
	}

	return result, nil
}

// runSeriesCore queries and aggregates one series over the configured range.
func runSeriesCore(ctx context.Context, cfg *contract.Config, store contract.PointStore) (schema.SeriesResult, error) {
	tr := cfg.Range()
	result := schema.SeriesResult{Range: tr}

	if cfg.Measurement == "" || cfg.Field == "" {
		return result, fmt.Errorf("both --measurement and --field are required")
	}

	series, err := store.QuerySeries(ctx, cfg.Measurement, cfg.Field, tr)
	if err != nil {
		return result, err
	}

	agg, err := Aggregate(series, tr, cfg.Window, cfg.Reducer, cfg.Fill)
	if err != nil {
		return result, err
	}
	if len(agg.Points) > cfg.ResultLimit {
		agg.Points = agg.Points[len(agg.Points)-cfg.ResultLimit:]
	}
	result.Series = agg

	return result, nil
}
