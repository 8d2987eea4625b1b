package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/internal/parquet"
	"github.com/gerritlens/gerritlens/schema"
)

// tableTimeFormat keeps table rows compact.
const tableTimeFormat = "2006-01-02 15:04"

// avgReviewColumn is the column whose values drive the health label in
// review reports.
const avgReviewColumn = "AvgReviewHours"

// PrintReportResults outputs a joined report, dispatching based on the output format configured.
func PrintReportResults(result schema.ReportResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForReport(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForReport(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForReport(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printReportTable(result, cfg, fmtFloat, duration, false); err != nil {
			return fmt.Errorf("error writing report table output: %w", err)
		}
	}
	return nil
}

// PrintReviewResults outputs a review report. The table form appends a
// health label derived from the average review hours column.
func PrintReviewResults(result schema.ReportResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForReport(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForReport(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForReport(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := printReportTable(result, cfg, fmtFloat, duration, true); err != nil {
			return fmt.Errorf("error writing review table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForReport handles opening the file and calling the JSON writer.
func printJSONResultsForReport(result schema.ReportResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForReport(w, result)
	}, "Wrote JSON report results")
}

// printCSVResultsForReport handles opening the file and calling the CSV writer.
func printCSVResultsForReport(result schema.ReportResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForReport(csvWriter, result, fmtFloat)
	}, "Wrote CSV report results")
}

// printParquetResultsForReport writes the report to a Parquet file.
// Parquet is file-only since the format is binary.
func printParquetResultsForReport(result schema.ReportResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	if err := parquet.WriteReportParquet(result, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote Parquet report results to %s\n", cfg.OutputFile)
	return nil
}

// printReportTable prints the joined table with one row per window.
func printReportTable(result schema.ReportResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, withHealth bool) error {
	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	maxWidth := GetMaxTableLabelWidth(cfg)
	headers := []string{"Window"}
	for _, col := range result.Table.Columns {
		headers = append(headers, contract.TruncateLabel(col, maxWidth))
	}
	healthIdx := -1
	if withHealth {
		healthIdx = columnIndex(result.Table.Columns, avgReviewColumn)
		if healthIdx >= 0 {
			headers = append(headers, "Health")
		}
	}
	table.Header(headers)

	// --- 2. Configure Alignment ---
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	var data [][]string
	for _, r := range result.Table.Rows {
		row := []string{r.Start.Format(tableTimeFormat)}
		for _, v := range r.Values {
			row = append(row, fmtFloat(v))
		}
		if healthIdx >= 0 {
			row = append(row, healthLabel(r.Values[healthIdx], cfg.UseColors))
		}
		data = append(data, row)
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("%s: %d windows from %s to %s in %v\n",
		result.Title, len(result.Table.Rows),
		result.Range.Start.Format(tableTimeFormat), result.Range.Stop.Format(tableTimeFormat), duration)
	return nil
}

// healthLabel maps average review hours to a turnaround label.
func healthLabel(avgReviewHours float64, useColors bool) string {
	if useColors {
		return contract.GetColorLabel(avgReviewHours)
	}
	return contract.GetPlainLabel(avgReviewHours)
}

// columnIndex returns the index of name in columns, or -1.
func columnIndex(columns []string, name string) int {
	for i, col := range columns {
		if col == name {
			return i
		}
	}
	return -1
}
