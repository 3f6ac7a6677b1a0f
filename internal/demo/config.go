package demo

import (
	"io"
	"time"

	"github.com/okian/radar/internal/adapters/render"
)

// Config holds configuration for a demo run.
type Config struct {
	OutDir  string       // Directory receiving every generated file
	CSVFile string       // CSV used by the CSV step; the sample table is saved and used when empty
	LogFile string       // Log file for the run
	Verbose bool         // Enable debug logging
	Seed    int64        // Sample data seed
	Style   render.Style // Chart style for every step
	Out     io.Writer    // Receives data summaries; nil discards them
}

// Stats holds run statistics.
type Stats struct {
	StepsRun      int
	StepsFailed   int
	ChartsWritten int
	Files         []string
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
}
