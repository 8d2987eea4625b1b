package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGetPlainLabel tests review turnaround labeling thresholds.
func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		hours    float64
		expected string
	}{
		{name: "same day", hours: 4, expected: FastValue},
		{name: "boundary to steady", hours: 24, expected: SteadyValue},
		{name: "a few days", hours: 71.9, expected: SteadyValue},
		{name: "boundary to slow", hours: 72, expected: SlowValue},
		{name: "about a week", hours: 167, expected: SlowValue},
		{name: "over a week", hours: 168, expected: StalledValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.hours))
		})
	}
}

// TestParseBoolString tests the CLI boolean spellings.
func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"", "yes", "TRUE", "1", "on"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got, s)
	}
	for _, s := range []string{"no", "False", "0", "off"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

// TestTruncateLabel tests tail-preserving truncation.
func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "short", TruncateLabel("short", 10))
	assert.Equal(t, "...form/core", TruncateLabel("chromium/platform/core", 12))
	assert.Equal(t, "abc", TruncateLabel("abc", 3), "tiny widths are left alone")
}
