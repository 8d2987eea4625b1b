// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a joined report using the configured output format.
func (ow *OutWriter) WriteReport(result schema.ReportResult, cfg *contract.Config, duration time.Duration) error {
	return PrintReportResults(result, cfg, duration)
}

// WriteReview prints a review report using the configured output format.
func (ow *OutWriter) WriteReview(result schema.ReportResult, cfg *contract.Config, duration time.Duration) error {
	return PrintReviewResults(result, cfg, duration)
}

// WriteSeries prints an aggregated series using the configured output format.
func (ow *OutWriter) WriteSeries(result schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	return PrintSeriesResults(result, cfg, duration)
}

// WriteCollect prints a collection summary using the configured output format.
func (ow *OutWriter) WriteCollect(summary schema.CollectSummary, cfg *contract.Config, duration time.Duration) error {
	return PrintCollectSummary(summary, cfg, duration)
}

// GetMaxTableLabelWidth calculates the maximum width for series labels in
// table output based on terminal width.
func GetMaxTableLabelWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the timestamp column plus borders and padding
	available := termWidth - 40
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
