package cmd

import (
	"fmt"

	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/internal/pointstore"
	"github.com/gerritlens/gerritlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")
	influxDatabase := viper.GetString("influx-database")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr, influxDatabase); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.InfluxDatabase = influxDatabase
	cfg.OutputFile = outputFile

	// Initialize the store with the loaded config
	if err := pointstore.InitStore(cfg); err != nil {
		return fmt.Errorf("failed to initialize point store: %w", err)
	}

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")
	influxDatabase := viper.GetString("influx-database")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr, influxDatabase); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.InfluxDatabase = influxDatabase

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for migrate command.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeCmd focused on point store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by collection and reporting commands. This avoids
// Gerrit validation and time range parsing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the recorded metric point store",
	Long: `Manage the point store that holds collected Gerrit metrics.

Supported backends: SQLite (default), MySQL, PostgreSQL, InfluxDB, or None

Subcommands:
  status  - Show point counts, time bounds and measurements
  clear   - Remove all recorded points
  export  - Export raw points to Parquet for analytics
  migrate - Run database schema migrations

Examples:
  # Check store status
  gerritlens store status

  # Export for analysis in pandas/DuckDB
  gerritlens store export --output-file points.parquet`,
}

// storeClearCmd clears the point store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded metric points",
	Long: `Delete all recorded points from the configured backend.

WARNING: This action cannot be undone. Consider exporting data first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the points table
For InfluxDB: Drops the configured database

Examples:
  # Export before clearing
  gerritlens store export --output-file backup.parquet
  gerritlens store clear

  # Clear a MySQL store (set connection string via env variable)
  GERRITLENS_STORE_BACKEND=mysql GERRITLENS_STORE_DB_CONNECT="..." gerritlens store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := pointstore.ClearStore(cfg); err != nil {
			contract.LogFatal("Failed to clear point store", err)
		}
		fmt.Println("Point store cleared successfully.")
	},
}

// storeStatusCmd shows point store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display point store statistics and connection details",
	Long: `Show detailed information about the point store.

Displays:
- Backend type and connection status
- Total number of recorded points
- Oldest and newest point timestamps
- Measurements present

Examples:
  # Check store status
  gerritlens store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := pointstore.Manager.GetPointStore().GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		pointstore.PrintStoreStatus(status)
	},
}

// storeExportCmd exports raw points to a Parquet file.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export raw points to Parquet for BI tools and analytics",
	Long: `Export every recorded point to Parquet format for use with analytics tools.

Each row carries the measurement, field, timestamp, value kind and the
typed value columns, mirroring the storage layout.

Requires: --output-file parameter

Examples:
  # Export all points
  gerritlens store export --output-file points.parquet

  # Use with DuckDB for analysis
  gerritlens store export --output-file points.parquet
  duckdb -c "SELECT * FROM read_parquet('points.parquet') LIMIT 10"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := pointstore.ExecuteStoreExport(rootCtx, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export points", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the point store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the point store.

By default, migrates to the latest version. Use --target-version for
specific versions; 0 rolls back to the initial state.

Examples:
  # Migrate to latest version (default)
  gerritlens store migrate

  # Migrate to specific version
  gerritlens store migrate --target-version 1

  # Rollback to initial state
  gerritlens store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := pointstore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
