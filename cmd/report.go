package cmd

import (
	"github.com/gerritlens/gerritlens/core"
	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd groups the windowed reports built from collected points.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build windowed reports from collected metrics",
	Long: `Build windowed reports by joining aggregated series from the point store.

Each report queries several series for the configured time range, reduces
them into fixed windows and inner-joins the windows into one table.

Subcommands:
  activity - Commit counts and line churn per window
  review   - Merge throughput, review latency and comment density

Examples:
  # Daily commit activity for the last 30 days
  gerritlens report activity

  # Weekly review health as CSV
  gerritlens report review --window 7d --output csv`,
}

// reportActivityCmd reports commit activity.
var reportActivityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show commit counts and line churn per window.",
	Long: `Report commit activity from the commit_details measurement.

Columns per window:
- Commits:    number of changes created
- Insertions: total inserted lines
- Deletions:  total deleted lines

Quiet windows are filled with zeros for the churn columns so they still
join against the commit counts. Use --fill to control counting windows.

Examples:
  # Daily activity, last 30 days
  gerritlens report activity

  # Hourly activity for one day
  gerritlens report activity --window 1h --start "1 day"

  # Export to Parquet for DuckDB/pandas
  gerritlens report activity --output parquet --output-file activity.parquet`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteActivityReport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run activity report", err)
		}
	},
}

// reportReviewCmd reports review health.
var reportReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Show merge throughput, review latency and comment density.",
	Long: `Report review health from the commits_review measurement.

Columns per window:
- Merged:            changes merged
- AvgReviewHours:    average hours from creation to submission
- CommentsPerCommit: review comments per change

Table output adds a Health label derived from the average review hours:
Fast (<24h), Steady (<72h), Slow (<168h), Stalled (beyond that).

Examples:
  # Daily review health, last 30 days
  gerritlens report review

  # Weekly trend as JSON
  gerritlens report review --window 7d --output json`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReviewReport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run review report", err)
		}
	},
}
