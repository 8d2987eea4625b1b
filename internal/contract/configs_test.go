package contract

import (
	"testing"
	"time"

	"github.com/gerritlens/gerritlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation, for tests to mutate.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Limit:        DefaultResultLimit,
		Workers:      4,
		Precision:    DefaultPrecision,
		Output:       string(schema.TextOut),
		StoreBackend: string(schema.SQLiteBackend),
		Color:        "yes",
	}
}

// TestProcessAndValidateDefaults tests default resolution for a minimal input.
func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, DefaultWindow, cfg.Window)
	assert.Equal(t, schema.CountReducer, cfg.Reducer)
	assert.Nil(t, cfg.Fill)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.True(t, cfg.UseColors)
	assert.True(t, cfg.StartTime.Before(cfg.EndTime))
	assert.Equal(t, time.Duration(DefaultLookbackDays)*24*time.Hour, cfg.EndTime.Sub(cfg.StartTime))
}

// TestProcessAndValidateRejections tests the main validation failures.
func TestProcessAndValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{name: "zero limit", mutate: func(in *ConfigRawInput) { in.Limit = 0 }},
		{name: "excessive limit", mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }},
		{name: "zero workers", mutate: func(in *ConfigRawInput) { in.Workers = 0 }},
		{name: "bad precision", mutate: func(in *ConfigRawInput) { in.Precision = 5 }},
		{name: "bad output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }},
		{name: "bad reducer", mutate: func(in *ConfigRawInput) { in.Reducer = "median" }},
		{name: "bad fill", mutate: func(in *ConfigRawInput) { in.Fill = "lots" }},
		{name: "bad window", mutate: func(in *ConfigRawInput) { in.Window = "sideways" }},
		{name: "bad backend", mutate: func(in *ConfigRawInput) { in.StoreBackend = "oracle" }},
		{name: "bad color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }},
		{name: "start after end", mutate: func(in *ConfigRawInput) {
			in.Start = "2026-01-02T00:00:00Z"
			in.End = "2026-01-01T00:00:00Z"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

// TestProcessAndValidateParsing tests value parsing into the final config.
func TestProcessAndValidateParsing(t *testing.T) {
	input := validInput()
	input.Projects = "platform/core, tools/ci ,"
	input.Window = "1 day"
	input.Reducer = "sum"
	input.Fill = "0"
	input.Duration = "48Hours"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, []string{"platform/core", "tools/ci"}, cfg.Projects)
	assert.Equal(t, 24*time.Hour, cfg.Window)
	assert.Equal(t, schema.SumReducer, cfg.Reducer)
	require.NotNil(t, cfg.Fill)
	assert.Equal(t, 0.0, *cfg.Fill)
	assert.Equal(t, 48*time.Hour, cfg.EndTime.Sub(cfg.StartTime))
}

// TestValidateDatabaseConnectionString tests per-backend connection checks.
func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		influxDB    string
		expectError bool
	}{
		{name: "sqlite needs nothing", backend: schema.SQLiteBackend},
		{name: "mysql valid", backend: schema.MySQLBackend, connStr: "root:secret@tcp(localhost:3306)/metrics"},
		{name: "mysql missing tcp", backend: schema.MySQLBackend, connStr: "root:secret/metrics", expectError: true},
		{name: "postgres valid", backend: schema.PostgreSQLBackend, connStr: "host=localhost dbname=metrics"},
		{name: "postgres missing dbname", backend: schema.PostgreSQLBackend, connStr: "host=localhost", expectError: true},
		{name: "influx valid", backend: schema.InfluxBackend, connStr: "http://localhost:8086", influxDB: "engmetrics"},
		{name: "influx missing database", backend: schema.InfluxBackend, connStr: "http://localhost:8086", expectError: true},
		{name: "influx bad url", backend: schema.InfluxBackend, connStr: "localhost:8086", influxDB: "engmetrics", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr, tt.influxDB)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestValidateGerritConfig tests Gerrit connection validation.
func TestValidateGerritConfig(t *testing.T) {
	assert.Error(t, ValidateGerritConfig(&Config{}), "url required")
	assert.Error(t, ValidateGerritConfig(&Config{GerritURL: "gerrit.example.com"}), "scheme required")
	assert.Error(t, ValidateGerritConfig(&Config{GerritURL: "https://gerrit.example.com", GerritUser: "admin"}), "credentials must pair")
	assert.NoError(t, ValidateGerritConfig(&Config{GerritURL: "https://gerrit.example.com"}))
	assert.NoError(t, ValidateGerritConfig(&Config{GerritURL: "https://gerrit.example.com", GerritUser: "admin", GerritPassword: "secret"}))
}

// TestConfigClone tests deep copy semantics.
func TestConfigClone(t *testing.T) {
	fill := 1.5
	cfg := &Config{Projects: []string{"a"}, Fill: &fill}

	clone := cfg.Clone()
	clone.Projects[0] = "b"
	*clone.Fill = 9

	assert.Equal(t, "a", cfg.Projects[0])
	assert.Equal(t, 1.5, *cfg.Fill)
}
