package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGerritTimeUnmarshal tests decoding of Gerrit's timestamp format.
func TestGerritTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "valid timestamp",
			input:    `"2025-06-01 14:30:15.000000000"`,
			expected: time.Date(2025, time.June, 1, 14, 30, 15, 0, time.UTC),
		},
		{
			name:     "empty string yields zero time",
			input:    `""`,
			expected: time.Time{},
		},
		{
			name:        "rfc3339 is rejected",
			input:       `"2025-06-01T14:30:15Z"`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g GerritTime
			err := json.Unmarshal([]byte(tt.input), &g)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, g.Time)
		})
	}
}

// TestEventFromChange tests change-to-event conversion.
func TestEventFromChange(t *testing.T) {
	created := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	submitted := created.Add(6 * time.Hour)

	change := ChangeInfo{
		Project:           "platform/core",
		Status:            "merged",
		Created:           GerritTime{created},
		Submitted:         GerritTime{submitted},
		Insertions:        120,
		Deletions:         45,
		TotalCommentCount: 8,
		Owner:             AccountInfo{Name: "Dana"},
	}

	event := EventFromChange(change)
	assert.Equal(t, "platform/core", event.Project)
	assert.Equal(t, MergedChange, event.Status)
	assert.True(t, event.Merged())
	assert.Equal(t, 6*time.Hour, event.ReviewTime())
	assert.Equal(t, 120, event.Insertions)
	assert.Equal(t, 45, event.Deletions)
	assert.Equal(t, 8, event.CommentCount)
	assert.Equal(t, "Dana", event.Owner)
}

// TestEventFromChangeUnsubmitted tests events for open changes.
func TestEventFromChangeUnsubmitted(t *testing.T) {
	change := ChangeInfo{Project: "tools/ci", Status: "NEW"}

	event := EventFromChange(change)
	assert.Equal(t, NewChange, event.Status)
	assert.False(t, event.Merged())
	assert.Equal(t, time.Duration(0), event.ReviewTime())
}

// TestAccountDisplayName tests the name, username, email fallback chain.
func TestAccountDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		account  AccountInfo
		expected string
	}{
		{name: "full name wins", account: AccountInfo{Name: "Dana", Username: "dkim", Email: "d@example.com"}, expected: "Dana"},
		{name: "username fallback", account: AccountInfo{Username: "dkim", Email: "d@example.com"}, expected: "dkim"},
		{name: "email fallback", account: AccountInfo{Email: "d@example.com"}, expected: "d@example.com"},
		{name: "stub account", account: AccountInfo{AccountID: 7}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.account.DisplayName())
		})
	}
}
