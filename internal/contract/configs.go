package contract

import (
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gerritlens/gerritlens/schema"
)

// Default values for configuration.
const (
	DefaultLookbackDays = 30
	DefaultResultLimit  = 100
	MaxResultLimit      = 10000
	DefaultPrecision    = 1
	DefaultWindow       = 24 * time.Hour
)

// DefaultWorkers is the default number of concurrent collection workers.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling configuration.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling setup logic.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Config holds the runtime configuration for collection and reporting.
// This struct remains the "final, validated" config.
type Config struct {
	GerritURL      string
	GerritUser     string
	GerritPassword string // Please use env var as this is plaintext
	Projects       []string

	StartTime time.Time
	EndTime   time.Time

	Window      time.Duration
	Reducer     schema.Reducer
	Fill        *float64 // nil means empty windows are omitted
	Measurement string
	Field       string

	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
	InfluxDatabase string

	UseColors bool
}

// Range returns the configured query time range.
func (c *Config) Range() schema.TimeRange {
	return schema.TimeRange{Start: c.StartTime, Stop: c.EndTime}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Projects = slices.Clone(c.Projects)
	if c.Fill != nil {
		fill := *c.Fill
		clone.Fill = &fill
	}
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	GerritURL      string `mapstructure:"gerrit-url"`
	GerritUser     string `mapstructure:"gerrit-user"`
	GerritPassword string `mapstructure:"gerrit-password"`
	Projects       string `mapstructure:"projects"`
	Start          string `mapstructure:"start"`
	End            string `mapstructure:"end"`
	Window         string `mapstructure:"window"`
	Limit          int    `mapstructure:"limit"`
	Workers        int    `mapstructure:"workers"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	InfluxDatabase string `mapstructure:"influx-database"`
	Color          string `mapstructure:"color"`

	// --- Fields from collectCmd.Flags() ---
	Duration string `mapstructure:"duration"`

	// --- Fields from seriesCmd.Flags() ---
	Measurement string `mapstructure:"measurement"`
	Field       string `mapstructure:"field"`
	Reducer     string `mapstructure:"reducer"`
	Fill        string `mapstructure:"fill"`
}

// ProcessAndValidate converts the raw input into a validated Config.
// It populates cfg in place and returns the first validation error found.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input, time.Now()); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-time related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.GerritURL = strings.TrimSuffix(strings.TrimSpace(input.GerritURL), "/")
	cfg.GerritUser = input.GerritUser
	cfg.GerritPassword = input.GerritPassword
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Measurement = input.Measurement
	cfg.Field = input.Field
	cfg.InfluxDatabase = input.InfluxDatabase

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Projects Processing ---
	cfg.Projects = nil
	if input.Projects != "" {
		for p := range strings.SplitSeq(input.Projects, ",") {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				cfg.Projects = append(cfg.Projects, trimmed)
			}
		}
	}

	// --- 2. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 3. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 5. Window Validation ---
	window := DefaultWindow
	if input.Window != "" {
		window, err = ParseWindowDuration(input.Window)
		if err != nil {
			return fmt.Errorf("invalid window: %w", err)
		}
	}
	cfg.Window = window

	// --- 6. Reducer and Fill Validation ---
	reducer := schema.CountReducer
	if input.Reducer != "" {
		reducer = schema.Reducer(strings.ToLower(input.Reducer))
	}
	if _, ok := schema.ValidReducers[reducer]; !ok {
		return fmt.Errorf("invalid reducer '%s'. must be count, sum, mean", input.Reducer)
	}
	cfg.Reducer = reducer

	cfg.Fill = nil
	if fill := strings.TrimSpace(strings.ToLower(input.Fill)); fill != "" && fill != "none" {
		v, err := strconv.ParseFloat(fill, 64)
		if err != nil {
			return fmt.Errorf("invalid fill value '%s'. must be a number or 'none'", input.Fill)
		}
		cfg.Fill = &v
	}

	// --- 7. Backend Validation ---
	return validateBackendConfig(cfg, input)
}

// validateBackendConfig validates the point store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, influxdb, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect, cfg.InfluxDatabase)
}

// ValidateDatabaseConnectionString validates the format of point store
// connection strings for the non-file backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr, influxDatabase string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	case schema.InfluxBackend:
		if !strings.HasPrefix(connStr, "http://") && !strings.HasPrefix(connStr, "https://") {
			return fmt.Errorf("InfluxDB connection string must be an http(s) URL (received %q)", connStr)
		}
		if influxDatabase == "" {
			return fmt.Errorf("influx-database is required when using %s backend", backend)
		}
	}
	return nil
}

// ValidateGerritConfig checks the fields needed to reach a Gerrit server.
// Only collection commands require these.
func ValidateGerritConfig(cfg *Config) error {
	if cfg.GerritURL == "" {
		return fmt.Errorf("gerrit-url is required for collection")
	}
	if !strings.HasPrefix(cfg.GerritURL, "http://") && !strings.HasPrefix(cfg.GerritURL, "https://") {
		return fmt.Errorf("gerrit-url must be an http(s) URL (received %q)", cfg.GerritURL)
	}
	if (cfg.GerritUser == "") != (cfg.GerritPassword == "") {
		return fmt.Errorf("gerrit-user and gerrit-password must be set together")
	}
	return nil
}

// processTimeRange handles date parsing and time range validation.
// Collection commands may override the range with --duration afterwards.
func processTimeRange(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.EndTime = now
	cfg.StartTime = cfg.EndTime.Add(-DefaultLookbackDays * 24 * time.Hour)

	parse := func(s string) (time.Time, error) {
		if t, err := time.Parse(DateTimeFormat, s); err == nil {
			return t, nil
		}
		return ParseRelativeTime(s, now)
	}

	// --- Process Start Time ---
	if input.Start != "" {
		start, err := parse(input.Start)
		if err != nil {
			return fmt.Errorf("invalid start time %q: %w", input.Start, err)
		}
		cfg.StartTime = start
	}

	// --- Process End Time ---
	if input.End != "" {
		end, err := parse(input.End)
		if err != nil {
			return fmt.Errorf("invalid end time %q: %w", input.End, err)
		}
		cfg.EndTime = end
	}

	// --- Process Collection Duration (overrides start) ---
	if input.Duration != "" {
		d, err := ParseCollectDuration(input.Duration)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", input.Duration, err)
		}
		cfg.StartTime = cfg.EndTime.Add(-d)
	}

	// --- Validate ordering ---
	if !cfg.StartTime.Before(cfg.EndTime) {
		return fmt.Errorf("start time %s must be before end time %s",
			cfg.StartTime.Format(DateTimeFormat), cfg.EndTime.Format(DateTimeFormat))
	}

	return nil
}
