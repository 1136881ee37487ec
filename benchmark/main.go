// Package main provides a performance benchmarking tool for the Casemap CLI.
// It seeds synthetic folders of varying sizes, measures execution times for
// listing and matrix classification, treating the first successful run as cold
// and averaging the rest as warm, and generates CSV output for analysis.
//
// Prerequisites:
// - casemap binary installed and available in PATH
// - A writable scratch directory for the SQLite store
//
// Usage: go run benchmark/main.go [scratch-dir]
//
//	scratch-dir: Directory to hold the benchmark SQLite database
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (seed time, cold run and average of warm runs).
type BenchmarkResult struct {
	FolderSize string
	Command    string
	SeedTime   string
	ColdTime   string
	WarmTime   string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	ScratchDir  string
	Timeout     time.Duration
	Runs        int
	FolderSizes []int
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [scratch-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		ScratchDir:  os.Args[1],
		Timeout:     2 * time.Minute,
		Runs:        5,
		FolderSizes: []int{50, 250, 1000},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Point the store at a scratch database so user data stays untouched
	dbPath := filepath.Join(config.ScratchDir, "casemap_benchmark.db")
	_ = os.Setenv("CASEMAP_STORE_BACKEND", "sqlite")
	_ = os.Setenv("CASEMAP_STORE_DB_CONNECT", dbPath)

	fmt.Printf("Clearing store...\n")
	clearCmd := exec.Command("casemap", "store", "clear")
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

// checkPrerequisites verifies that the casemap binary and scratch directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("casemap"); err != nil {
		return fmt.Errorf("casemap binary not found in PATH")
	}
	info, err := os.Stat(config.ScratchDir)
	if err != nil {
		return fmt.Errorf("scratch directory %s not accessible: %w", config.ScratchDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("scratch path %s is not a directory", config.ScratchDir)
	}
	return nil
}

// runBenchmarks seeds one folder per configured size and benchmarks each command
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: sizes %v, %v timeout, %d runs per command\n",
		config.FolderSizes, config.Timeout, config.Runs)

	for _, size := range config.FolderSizes {
		folder := fmt.Sprintf("bench-%d", size)
		fmt.Printf("Seeding folder %s with %d cases\n", folder, size)

		seedTime, err := seedFolder(config, folder, size)
		if err != nil {
			fmt.Printf("Warning: seeding %s failed: %v\n", folder, err)
			continue
		}
		seedStr := fmt.Sprintf("%.3fs", seedTime)

		result := runBenchmarkSuite(config, folder, seedStr, "list",
			"case listing", []string{"cases", "list", "--folder", folder, "--limit", fmt.Sprint(size)})
		results = append(results, result)

		result = runBenchmarkSuite(config, folder, seedStr, "matrix",
			"matrix classification", []string{"matrix", "--folder", folder})
		results = append(results, result)
	}

	return results
}

// seedFolder creates a folder and fills it with synthetic use cases via the CLI
func seedFolder(config BenchmarkConfig, folder string, size int) (float64, error) {
	start := time.Now()

	addFolder := exec.Command("casemap", "folders", "add", folder,
		"--description", "synthetic benchmark folder")
	if output, err := addFolder.CombinedOutput(); err != nil {
		return 0, fmt.Errorf("folders add: %w\nOutput: %s", err, string(output))
	}

	for i := 0; i < size; i++ {
		name := fmt.Sprintf("Benchmark case %04d", i)
		addCase := exec.Command("casemap", "cases", "add", name,
			"--folder", folder,
			"--description", "generated for throughput measurement")
		if output, err := addCase.CombinedOutput(); err != nil {
			return 0, fmt.Errorf("cases add %q: %w\nOutput: %s", name, err, string(output))
		}
	}

	return time.Since(start).Seconds(), nil
}

// runBenchmarkSuite runs one command repeatedly and splits cold from warm timings
func runBenchmarkSuite(config BenchmarkConfig, folder, seedTime, command, description string, args []string) BenchmarkResult {
	fmt.Printf("Running %s on %s (%d runs)\n", description, folder, config.Runs)

	cold, times := runBenchmark(config, command, args)

	coldStr := "TIMEOUT"
	if cold > 0 {
		coldStr = fmt.Sprintf("%.3fs", cold)
	}

	warmStr := "TIMEOUT"
	if len(times) > 0 {
		var sum float64
		for _, t := range times {
			sum += t
		}
		warmStr = fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	fmt.Printf("  Seed: %s, Cold: %s, Warm average: %s\n", seedTime, coldStr, warmStr)

	return BenchmarkResult{
		FolderSize: folder,
		Command:    command,
		SeedTime:   seedTime,
		ColdTime:   coldStr,
		WarmTime:   warmStr,
	}
}

// runBenchmark executes a casemap command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, command string, args []string) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("casemap", args...)

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

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	var completionPhrase string
	if command == "matrix" {
		completionPhrase = "Classification completed in"
	} else {
		completionPhrase = "Listing completed in"
	}

	return strings.Contains(outputStr, completionPhrase)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/casemap_benchmark_%s.csv", timestamp)

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

	if err := writer.Write([]string{"folder", "cmd", "seed_time", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.FolderSize, result.Command, result.SeedTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "list", "Case Listing:")
	printCommandSummary(results, "matrix", "Matrix Classification:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: Seed: %s, Cold: %s, Warm: %s\n", result.FolderSize, result.SeedTime, result.ColdTime, result.WarmTime)
		}
	}
}
