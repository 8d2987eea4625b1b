package cmd

import (
	"github.com/gerritlens/gerritlens/core"
	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/spf13/cobra"
)

// seriesCmd aggregates a single stored series.
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Aggregate one measurement/field into fixed windows.",
	Long: `Query a single measurement/field from the point store and reduce it
into fixed windows.

Reducers:
- count: number of points per window (works on any field)
- sum:   sum of numeric values per window
- mean:  average of numeric values per window

Empty windows are omitted by default. Pass --fill with a number to emit
them with that value instead.

Examples:
  # Daily count of recorded changes
  gerritlens series --measurement commit_details --field status

  # Weekly inserted lines
  gerritlens series --measurement commit_details --field insertions \
    --reducer sum --window 7d

  # Mean review latency with explicit zero fill
  gerritlens series --measurement commits_review --field AverageReviewTime \
    --reducer mean --fill 0`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSeries(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run series query", err)
		}
	},
}
