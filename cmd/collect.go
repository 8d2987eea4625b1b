package cmd

import (
	"github.com/gerritlens/gerritlens/core"
	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/spf13/cobra"
)

// collectCmd fetches change activity from Gerrit and records it.
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Fetch Gerrit changes and record them as metric points.",
	Long: `Fetch change activity from a Gerrit server and record it in the point store.

For every change created inside the collection window, gerritlens records:
- Change status, inserted and deleted lines (commit_details measurement)
- Submission timestamps for merged changes
- Review health aggregates: merge counts, average review hours,
  comments per commit (commits_review measurement)

Projects are fetched concurrently. When no projects are specified, all
ACTIVE projects on the server are collected.

Examples:
  # Collect the last 30 days (default window) for all active projects
  gerritlens collect --gerrit-url https://review.example.com

  # Collect one week of two specific projects
  gerritlens collect --projects platform/core,platform/ui --duration 7d

  # Authenticated collection into MySQL
  GERRITLENS_GERRIT_PASSWORD=... gerritlens collect \
    --gerrit-user metrics-bot \
    --store-backend mysql --store-db-connect "user:pass@tcp(host:3306)/metrics"`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCollect(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run collection", err)
		}
	},
}
