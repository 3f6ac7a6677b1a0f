package demo

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/radar/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging sends log output to stderr and to logFile. If logFile is
// empty, a timestamped filename is generated. The returned function closes
// the file.
func SetupLogging(logFile string, verbose bool) (func() error, error) {
	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "demo_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	level := "info"
	if verbose {
		level = "debug"
	}
	if err := logger.Init(logger.WithWriter(io.MultiWriter(os.Stderr, file)), logger.WithLevel(level)); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return file.Close, nil
}

// ShowHelp prints usage information for the demo tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Radar Chart Demo
================

Walks through every chart mode: sample data, CSV data, custom data,
individual charts for each student, a single student chart and a combined
comparison chart.

Usage:
  go run ./cmd/radar-demo [options]

Options:
  -out string
        Directory for generated files (default "demo_output")
  -csv string
        CSV file for the CSV step (default: the sample data saved as CSV)
  -log string
        Log file for the run (default: demo_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Run with default settings
  go run ./cmd/radar-demo

  # Use your own data for the CSV step
  go run ./cmd/radar-demo -csv scores.csv -out charts
`)
}
