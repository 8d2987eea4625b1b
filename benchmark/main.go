// Package main provides a performance benchmarking tool for the gerritlens CLI.
// It measures execution times for collection and reporting across lookback
// windows, running each test multiple times, treating the first successful run
// as cold and averaging the rest as warm, generating CSV output for
// performance analysis and documentation.
//
// Prerequisites:
// - gerritlens binary installed and available in PATH
// - A reachable Gerrit server (GERRITLENS_GERRIT_URL or first argument)
//
// Usage: go run benchmark/main.go [gerrit-url]
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-store average, cold run and average of warm runs).
type BenchmarkResult struct {
	Duration    string
	Command     string
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	GerritURL   string
	Timeout     time.Duration
	Workers     int
	NoStoreRuns int
	StoreRuns   int
	Durations   []string
}

func main() {
	// Parse command line arguments
	gerritURL := os.Getenv("GERRITLENS_GERRIT_URL")
	if len(os.Args) == 2 {
		gerritURL = os.Args[1]
	}
	if gerritURL == "" {
		fmt.Printf("Usage: %s [gerrit-url]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		GerritURL:   gerritURL,
		Timeout:     5 * time.Minute,
		Workers:     14,
		NoStoreRuns: 3,
		StoreRuns:   4,
		Durations:   []string{"7d", "30d", "90d"},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the store using gerritlens store clear
	fmt.Printf("Clearing store...\n")
	clearCmd := exec.Command("gerritlens", "store", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear store: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Store cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the gerritlens binary exists.
func checkPrerequisites() error {
	if _, err := exec.LookPath("gerritlens"); err != nil {
		return fmt.Errorf("gerritlens binary not found in PATH")
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured lookback windows.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d windows, %v timeout, %d workers, no-store: %d runs, store: %d runs\n",
		len(config.Durations), config.Timeout, config.Workers, config.NoStoreRuns, config.StoreRuns)

	for _, duration := range config.Durations {
		fmt.Printf("Benchmarking %s lookback\n", duration)

		// Collection
		collectArgs := fmt.Sprintf("--gerrit-url %s --duration %s --workers %d", config.GerritURL, duration, config.Workers)
		result := runBenchmarkSuite(config, duration, "collect", "collection", collectArgs)
		results = append(results, result)

		// Activity report over the collected window
		result = runBenchmarkSuite(config, duration, "report activity", "activity report", fmt.Sprintf("--start \"%s\"", durationToStart(duration)))
		results = append(results, result)

		// Single-series aggregation
		seriesArgs := fmt.Sprintf("--measurement commit_details --field insertions --reducer sum --start \"%s\"", durationToStart(duration))
		result = runBenchmarkSuite(config, duration, "series", "series aggregation", seriesArgs)
		results = append(results, result)
	}

	return results
}

// durationToStart converts a collect duration flag into a relative start date.
func durationToStart(duration string) string {
	switch duration {
	case "7d":
		return "7 days"
	case "30d":
		return "30 days"
	case "90d":
		return "90 days"
	default:
		return duration
	}
}

// runBenchmarkSuite runs both no-store and store benchmarks for a command.
func runBenchmarkSuite(config BenchmarkConfig, duration, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s for %s\n", description, duration)

	// Helper to run a benchmark phase
	runPhase := func(storeBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, command, extraArgs, storeBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-store runs
	_, noStoreAvg := runPhase("none", config.NoStoreRuns, "No-store")

	// Phase 2: Store runs
	coldTime, warmAvg := runPhase("sqlite", config.StoreRuns, "Store")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Duration:    duration,
		Command:     command,
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a gerritlens command multiple times with the given store backend and returns cold time and warm times.
func runBenchmark(config BenchmarkConfig, command, extraArgs, storeBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := strings.Fields(command)
	args = append(args, "--store-backend", storeBackend)
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("gerritlens", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates successful completion.
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	if command == "collect" {
		return strings.Contains(outputStr, "Collection completed in") &&
			strings.Contains(outputStr, "workers")
	}
	// Reports and series end with a windows/range footer.
	return strings.Contains(outputStr, "windows")
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/gerritlens_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"window", "cmd", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Duration, result.Command, result.NoStoreTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "collect", "Collection:")
	printCommandSummary(results, "report activity", "Activity Report:")
	printCommandSummary(results, "series", "Series Aggregation:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type.
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-store: %s, Cold: %s, Warm: %s\n", result.Duration, result.NoStoreTime, result.ColdTime, result.WarmTime)
		}
	}
}
