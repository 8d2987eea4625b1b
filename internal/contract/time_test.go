package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC)

// TestParseRelativeTime covers various valid and invalid cases.
func TestParseRelativeTime(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "valid plural days (mixed case)",
			input:    "10 DaYs AgO",
			expected: fixedNow.Add(time.Duration(-10) * 24 * time.Hour),
		},
		{
			name:     "valid singular week",
			input:    "1 week ago",
			expected: fixedNow.Add(time.Duration(-1) * 7 * 24 * time.Hour),
		},
		{
			name:     "valid months",
			input:    "3 months ago",
			expected: fixedNow.AddDate(0, -3, 0),
		},
		{
			name:     "suffixless years",
			input:    "2 years",
			expected: fixedNow.AddDate(-2, 0, 0),
		},
		{
			name:     "suffixless single day",
			input:    "1 day",
			expected: fixedNow.Add(time.Duration(-1) * 24 * time.Hour),
		},
		{
			name:        "invalid bad unit",
			input:       "4 decades ago",
			expectError: true,
		},
		{
			name:        "invalid trailing text",
			input:       "2 days from now",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeTime(tt.input, fixedNow)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestParseWindowDuration covers Go and human-readable window formats.
func TestParseWindowDuration(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Duration
		expectError bool
	}{
		{name: "go duration", input: "6h", expected: 6 * time.Hour},
		{name: "single day", input: "1 day", expected: 24 * time.Hour},
		{name: "plural weeks", input: "2 weeks", expected: 2 * 7 * 24 * time.Hour},
		{name: "minutes", input: "30 minutes", expected: 30 * time.Minute},
		{name: "zero duration rejected", input: "0s", expectError: true},
		{name: "negative duration rejected", input: "-1h", expectError: true},
		{name: "garbage rejected", input: "next tuesday", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWindowDuration(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestParseCollectDuration covers the compact Gerrit-style window strings.
func TestParseCollectDuration(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Duration
		expectError bool
	}{
		{name: "compact hours", input: "24Hours", expected: 24 * time.Hour},
		{name: "compact minutes", input: "120Minutes", expected: 120 * time.Minute},
		{name: "compact days", input: "2Days", expected: 48 * time.Hour},
		{name: "compact month approximation", input: "1Month", expected: 30 * 24 * time.Hour},
		{name: "suffix days", input: "7d", expected: 7 * 24 * time.Hour},
		{name: "suffix weeks", input: "4w", expected: 4 * 7 * 24 * time.Hour},
		{name: "window fallback", input: "36h", expected: 36 * time.Hour},
		{name: "garbage rejected", input: "soon", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCollectDuration(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
