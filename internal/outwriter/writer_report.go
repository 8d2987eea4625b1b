package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/schema"
)

// writeJSONResultsForReport marshals the schema.ReportResult to JSON and writes it.
func writeJSONResultsForReport(w io.Writer, result schema.ReportResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForReport writes the schema.ReportResult data to a CSV writer.
func writeCSVResultsForReport(w *csv.Writer, result schema.ReportResult, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{"window_start"}
	header = append(header, result.Table.Columns...)
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, r := range result.Table.Rows {
		row := []string{r.Start.Format(contract.DateTimeFormat)}
		for _, v := range r.Values {
			row = append(row, fmtFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
