package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/radar/internal/adapters/csvtable"
	"github.com/okian/radar/internal/app"
	"github.com/okian/radar/internal/domain/sample"
	"github.com/okian/radar/internal/domain/table"
	"github.com/okian/radar/internal/launcher"
	"github.com/okian/radar/pkg/logger"
)

// renderFlags are shared by the root command and render.
type renderFlags struct {
	title  string
	output string
	show   bool
}

func (f *renderFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Chart title (default from config)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output image file: png, jpg, svg, pdf, eps or tif (default from config)")
	cmd.Flags().BoolVar(&f.show, "show", false, "Open the chart in the system image viewer (default from config)")
}

func (c *cli) build(t *table.Table) (*app.Generator, error) {
	return app.New(t,
		app.WithStyle(c.cfg.Style()),
		app.WithLogger(c.log),
		app.WithPreviewRows(c.cfg.PreviewRows),
	)
}

func (c *cli) renderCmd() *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "render [csv]",
		Short: "Render every entity on one combined chart",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.render(cmd, args, flags)
		},
	}
	flags.bind(cmd)
	return cmd
}

func (c *cli) render(cmd *cobra.Command, args []string, flags renderFlags) error {
	g, err := c.generator(args)
	if err != nil {
		return err
	}
	if err := g.PrintSummary(c.out); err != nil {
		return err
	}

	opts := app.ChartOptions{Title: c.cfg.Title, SavePath: c.cfg.Output, Show: c.cfg.Show}
	if cmd.Flags().Changed("title") {
		opts.Title = flags.title
	}
	if cmd.Flags().Changed("output") {
		opts.SavePath = flags.output
	}
	if cmd.Flags().Changed("show") {
		opts.Show = flags.show
	}

	if _, err := g.GenerateChart(cmd.Context(), opts); err != nil {
		return err
	}
	if opts.SavePath != "" {
		_, _ = fmt.Fprintf(c.out, "Chart saved as '%s'\n", opts.SavePath)
	}
	return nil
}

func (c *cli) individualCmd() *cobra.Command {
	var (
		dir  string
		show bool
	)
	cmd := &cobra.Command{
		Use:   "individual [csv]",
		Short: "Render one chart per entity into a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.generator(args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dir") {
				dir = c.cfg.OutputDir
			}
			if !cmd.Flags().Changed("show") {
				show = c.cfg.Show
			}

			res, err := g.GenerateAllIndividualCharts(cmd.Context(), dir, show)
			for _, p := range res.Outputs {
				_, _ = fmt.Fprintf(c.out, "Chart saved as '%s'\n", p)
			}
			for _, f := range res.Failures {
				_, _ = fmt.Fprintf(c.errOut, "Failed to render %q: %v\n", f.Entity, f.Err)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(c.out, "%d charts written to %s\n", len(res.Outputs), res.Dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Output directory (default from config)")
	cmd.Flags().BoolVar(&show, "show", false, "Open each chart in the system image viewer")
	return cmd
}

func (c *cli) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [csv]",
		Short: "Print the data summary without rendering",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			g, err := c.generator(args)
			if err != nil {
				return err
			}
			return g.PrintSummary(c.out)
		},
	}
}

func (c *cli) interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Choose data and chart options from a menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l := launcher.New(c.in, c.out,
				launcher.WithSeed(c.cfg.Seed),
				launcher.WithShow(c.cfg.Show),
				launcher.WithGenerator(c.build),
				launcher.WithLogger(c.log),
			)
			return l.Run(cmd.Context())
		},
	}
}

func (c *cli) sampleCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the sample table as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				return errors.New("--output is required")
			}
			if err := csvtable.Save(output, sample.Generate(c.cfg.Seed)); err != nil {
				return err
			}
			c.log.Info(cmd.Context(), "sample data written", logger.String("path", output))
			_, _ = fmt.Fprintf(c.out, "Sample data saved as '%s'\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "sample_data.csv", "Destination CSV file")
	return cmd
}
