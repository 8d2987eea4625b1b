package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Review velocity label constants.
const (
	FastValue    = "Fast"    // Fast value
	SteadyValue  = "Steady"  // Steady value
	SlowValue    = "Slow"    // Slow value
	StalledValue = "Stalled" // Stalled value
)

// Color variables for console output.
var (
	FastColor    = color.New(color.FgGreen)           // fastColor represents healthy review turnaround.
	SteadyColor  = color.New(color.FgCyan)            // steadyColor represents normal turnaround.
	SlowColor    = color.New(color.FgYellow)          // slowColor represents standard caution, not bold.
	StalledColor = color.New(color.FgRed, color.Bold) // stalledColor represents reviews going nowhere.
)

// GetPlainLabel returns a plain text label indicating review turnaround
// health based on the average review time in hours. This is the core logic
// used for CSV, JSON, and table printing.
func GetPlainLabel(avgReviewHours float64) string {
	switch {
	case avgReviewHours < 24:
		return FastValue
	case avgReviewHours < 72:
		return SteadyValue
	case avgReviewHours < 168:
		return SlowValue
	default:
		return StalledValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(avgReviewHours float64) string {
	text := GetPlainLabel(avgReviewHours)

	switch text {
	case FastValue:
		return FastColor.Sprint(text)
	case SteadyValue:
		return SteadyColor.Sprint(text)
	case SlowValue:
		return SlowColor.Sprint(text)
	default: // "Stalled"
		return StalledColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ParseBoolString interprets common yes/no spellings used by CLI flags.
func ParseBoolString(s string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "yes", "true", "1", "on":
		return true, nil
	case "no", "false", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("unrecognized boolean value %q", s)
	}
}

// TruncateLabel shortens a label to maxWidth runes, keeping the tail, which
// carries the distinguishing part of long project and field names.
func TruncateLabel(label string, maxWidth int) string {
	if maxWidth <= 3 || len(label) <= maxWidth {
		return label
	}
	return "..." + label[len(label)-maxWidth+3:]
}

// GetStoreDBFilePath returns the path to the SQLite DB file used when no
// connection string is configured.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gerritlens_points.db"
	}
	return filepath.Join(homeDir, ".gerritlens_points.db")
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warning %s: %v\n", msg, err)
}
