// Command radar-demo walks through every chart mode and writes the results to
// an output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/radar/internal/config"
	"github.com/okian/radar/internal/demo"
	"github.com/okian/radar/pkg/logger"
	"github.com/okian/radar/pkg/metrics"
)

const defaultOutDir = "demo_output"

func main() {
	var (
		outDir  = flag.String("out", defaultOutDir, "Directory for generated files")
		csvFile = flag.String("csv", "", "CSV file for the CSV step (default: the sample data saved as CSV)")
		logFile = flag.String("log", "", "Log file for the run (default: demo_log_TIMESTAMP.log)")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
		help    = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		demo.ShowHelp(os.Stdout)
		return
	}

	closeLog, err := demo.SetupLogging(*logFile, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Chart style and seed follow the regular configuration sources.
	base, err := config.Load(ctx)
	if err != nil {
		stop()
		_ = closeLog()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	metrics.Init(base.MetricsOptions()...)

	cfg := &demo.Config{
		OutDir:  *outDir,
		CSVFile: *csvFile,
		LogFile: *logFile,
		Verbose: *verbose,
		Seed:    base.Seed,
		Style:   base.Style(),
		Out:     os.Stdout,
	}

	_, runErr := demo.Run(ctx, cfg)
	stop()
	_ = logger.Sync()
	_ = closeLog()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Demo failed: %v\n", runErr)
		os.Exit(1)
	}
	fmt.Printf("Demo completed. Files written to %s\n", *outDir)
}
