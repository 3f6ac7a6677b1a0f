package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/radar/internal/adapters/csvtable"
	"github.com/okian/radar/internal/app"
	"github.com/okian/radar/internal/config"
	"github.com/okian/radar/pkg/logger"
	"github.com/okian/radar/pkg/metrics"
)

// cli carries the streams and the loaded configuration shared by every
// subcommand.
type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg *config.Config
	log logger.Logger
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{in: in, out: out, errOut: errOut, log: logger.Nop()}
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "radar [csv]",
		Short: "Render radar charts from a CSV score table",
		Long: `radar renders one polygon per table row (entity) over one axis per column
(dimension). Without a CSV path it uses a reproducible sample table.

Configuration comes from defaults, an optional .env file, the YAML file named
by RADAR_CONFIG and RADAR_* environment variables, in that order.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.render(cmd, args, flags)
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	flags.bind(cmd)

	cmd.AddCommand(
		c.renderCmd(),
		c.individualCmd(),
		c.summaryCmd(),
		c.interactiveCmd(),
		c.serveCmd(),
		c.sampleCmd(),
	)
	return cmd
}

// setup loads configuration and initializes logging and metrics before any
// subcommand.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	opts := append(cfg.LoggerOptions(), logger.WithWriter(c.errOut))
	if err := logger.Init(opts...); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	metrics.Init(cfg.MetricsOptions()...)
	c.cfg = cfg
	c.log = logger.Named("radar")
	return nil
}

// generator resolves the optional CSV argument and builds a generator for it.
func (c *cli) generator(args []string) (*app.Generator, error) {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	t, err := csvtable.Resolve(path, c.cfg.Seed)
	if err != nil {
		return nil, err
	}
	return c.build(t)
}
