// Package cmd defines the command-line interface for gerritlens.
package cmd

import (
	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the report subcommands to the parent report command
	reportCmd.AddCommand(reportActivityCmd)
	reportCmd.AddCommand(reportReviewCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("gerrit-url", "", "Base URL of the Gerrit server (e.g. https://review.example.com)")
	rootCmd.PersistentFlags().String("gerrit-user", "", "Gerrit HTTP username for authenticated requests")
	rootCmd.PersistentFlags().String("gerrit-password", "", "Gerrit HTTP password (prefer the GERRITLENS_GERRIT_PASSWORD env var)")
	rootCmd.PersistentFlags().StringP("projects", "p", "", "Comma-separated list of Gerrit projects (defaults to all active projects)")
	rootCmd.PersistentFlags().String("start", "", "Start date in ISO8601 or time ago")
	rootCmd.PersistentFlags().String("end", "", "End date in ISO8601 or time ago")
	rootCmd.PersistentFlags().StringP("window", "w", "24h", "Aggregation window size (e.g. 1h, 24h, 7d)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Point store backend: sqlite or mysql or postgresql or influxdb or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql/influxdb (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("influx-database", "", "InfluxDB database name (required for the influxdb backend)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of collectCmd to Viper
	collectCmd.Flags().String("duration", "", "Collection lookback from now (e.g. 7d, 4w); overrides --start")
	if err := viper.BindPFlags(collectCmd.Flags()); err != nil {
		contract.LogFatal("Error binding collect flags", err)
	}

	// Bind all flags of seriesCmd to Viper
	seriesCmd.Flags().String("measurement", "", "Measurement to query (commit_details or commits_review)")
	seriesCmd.Flags().String("field", "", "Field name within the measurement")
	seriesCmd.Flags().String("reducer", string(schema.CountReducer), "Per-window reduction: count or sum or mean")
	seriesCmd.Flags().String("fill", "", "Value for empty windows, or 'none' to omit them")
	if err := viper.BindPFlags(seriesCmd.Flags()); err != nil {
		contract.LogFatal("Error binding series flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
