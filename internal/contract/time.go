package contract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Define the regular expression to capture "N [units]" with an optional
// "ago" suffix, e.g., "2 years ago", "3 months", "1 week".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute)s?(?:\s+ago)?$`)

// ParseRelativeTime converts strings like "2 weeks ago" or "2 weeks" into a
// time.Time in the past.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := relativeTimeRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	// 1: Value (e.g., "2")
	// 2: Unit (e.g., "year" or "month")
	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "year":
		return now.AddDate(-value, 0, 0), nil
	case "month":
		return now.AddDate(0, -value, 0), nil
	case "week":
		return now.Add(time.Duration(-value) * 7 * 24 * time.Hour), nil
	case "day":
		return now.Add(time.Duration(-value) * 24 * time.Hour), nil
	case "hour":
		return now.Add(time.Duration(-value) * time.Hour), nil
	case "minute":
		return now.Add(time.Duration(-value) * time.Minute), nil
	default:
		// Should be caught by the regex, but good for safety
		return time.Time{}, fmt.Errorf("unsupported time unit: %s", unit)
	}
}

// Define the regular expression to capture "N [units]".
var windowDurationRe = regexp.MustCompile(`^(\d+)\s+(week|day|hour|minute)s?$`)

// ParseWindowDuration converts strings like "1 day" or "6h" into a single
// time.Duration. It first tries Go's built-in time.ParseDuration for standard
// formats, then falls back to custom parsing for human-readable formats.
func ParseWindowDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	// Try Go's built-in duration parsing first (e.g., "24h", "30m")
	if duration, err := time.ParseDuration(s); err == nil {
		if duration <= 0 {
			return 0, errors.New("window must be a positive duration")
		}
		return duration, nil
	}

	// Fall back to custom parsing for human-readable formats (e.g., "1 day", "2 weeks")
	s = strings.ToLower(s)
	matches := windowDurationRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid window format: %s", s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "week":
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case "day":
		return time.Duration(value) * 24 * time.Hour, nil
	case "hour":
		return time.Duration(value) * time.Hour, nil
	case "minute":
		return time.Duration(value) * time.Minute, nil
	default:
		return 0, fmt.Errorf("unsupported window unit: %s", unit)
	}
}

// Define the regular expression for compact collection windows such as
// "24Hours", "2Days", "7d", "4w", "1Month" used by Gerrit tooling.
var collectDurationRe = regexp.MustCompile(`^(\d+)\s*(minutes?|hours?|days?|weeks?|months?|d|w)$`)

// ParseCollectDuration converts compact collection window strings into a
// time.Duration. Months are approximated as 30 days.
func ParseCollectDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := collectDurationRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		// Accept whatever the window parser can handle as a convenience.
		return ParseWindowDuration(s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "minute"):
		return time.Duration(value) * time.Minute, nil
	case strings.HasPrefix(unit, "hour"):
		return time.Duration(value) * time.Hour, nil
	case unit == "d" || strings.HasPrefix(unit, "day"):
		return time.Duration(value) * 24 * time.Hour, nil
	case unit == "w" || strings.HasPrefix(unit, "week"):
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case strings.HasPrefix(unit, "month"):
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unsupported duration unit: %s", unit)
	}
}
