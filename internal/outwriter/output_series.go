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

// PrintSeriesResults outputs an aggregated series, dispatching based on the output format configured.
func PrintSeriesResults(result schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForSeries(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForSeries(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForSeries(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printSeriesTable(result, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing series table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForSeries handles opening the file and calling the JSON writer.
func printJSONResultsForSeries(result schema.SeriesResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON series results")
}

// printCSVResultsForSeries handles opening the file and calling the CSV writer.
func printCSVResultsForSeries(result schema.SeriesResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"window_start", "measurement", "field", "reducer", "value"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, p := range result.Series.Points {
				row := []string{
					p.Start.Format(contract.DateTimeFormat),
					result.Series.Measurement,
					result.Series.Field,
					string(result.Series.Reducer),
					fmtFloat(p.Value),
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV series results")
}

// printParquetResultsForSeries writes the series to a Parquet file.
func printParquetResultsForSeries(result schema.SeriesResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	if err := parquet.WriteSeriesParquet(result, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote Parquet series results to %s\n", cfg.OutputFile)
	return nil
}

// printSeriesTable prints the aggregated series in a two-column table.
func printSeriesTable(result schema.SeriesResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	label := fmt.Sprintf("%s.%s (%s)", result.Series.Measurement, result.Series.Field, result.Series.Reducer)
	headers := []string{"Window", contract.TruncateLabel(label, GetMaxTableLabelWidth(cfg))}
	table.Header(headers)

	// --- 2. Configure Alignment ---
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	var data [][]string
	for _, p := range result.Series.Points {
		data = append(data, []string{p.Start.Format(tableTimeFormat), fmtFloat(p.Value)})
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("%d windows of %v from %s to %s in %v\n",
		len(result.Series.Points), result.Series.Window,
		result.Range.Start.Format(tableTimeFormat), result.Range.Stop.Format(tableTimeFormat), duration)
	return nil
}

// PrintCollectSummary outputs the result of a collect run.
func PrintCollectSummary(summary schema.CollectSummary, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON collect summary")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"projects", "changes", "contributors", "points_written", "window_start", "window_stop"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return csvWriter.Write([]string{
					fmt.Sprintf("%d", summary.Projects),
					fmt.Sprintf("%d", summary.Changes),
					fmt.Sprintf("%d", summary.Contributors),
					fmt.Sprintf("%d", summary.PointsWritten),
					summary.WindowStart.Format(contract.DateTimeFormat),
					summary.WindowStop.Format(contract.DateTimeFormat),
				})
			})
		}, "Wrote CSV collect summary")
	default:
		fmt.Printf("Collected %d changes across %d projects from %d contributors\n",
			summary.Changes, summary.Projects, summary.Contributors)
		fmt.Printf("Points written: %d\n", summary.PointsWritten)
		fmt.Printf("Window: %s to %s\n",
			summary.WindowStart.Format(tableTimeFormat), summary.WindowStop.Format(tableTimeFormat))
		fmt.Printf("Collection completed in %v with %d workers. Store backend: %s\n",
			duration, cfg.Workers, cfg.StoreBackend)
		return nil
	}
}
