// Package demo runs a scripted tour of the chart generator and reports what
// it produced.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/okian/radar/internal/adapters/csvtable"
	"github.com/okian/radar/internal/app"
	"github.com/okian/radar/internal/domain/sample"
	"github.com/okian/radar/internal/domain/table"
	"github.com/okian/radar/pkg/logger"
	"gonum.org/v1/plot/vg"
)

// Output file names, relative to Config.OutDir.
const (
	SampleChart     = "demo_sample.png"
	SampleCSV       = "sample_data.csv"
	CSVChart        = "demo_csv.png"
	CustomCSV       = "custom_data.csv"
	CustomChart     = "demo_custom.png"
	IndividualDir   = "demo_charts"
	CombinedChart   = "demo_combined_chart.png"
	specialSuffix   = "_special_chart.png"
	customWidthIn   = 12
	customHeightIn  = 10
	percentageScale = 100
)

// Custom programming skills data used by the custom data step.
//
//nolint:gochecknoglobals // fixed demo data
var (
	CustomSubjects = []string{"Programming", "Algorithms", "Databases", "Web Dev", "Mobile", "AI/ML"}
	CustomStudents = []string{"John", "Sarah", "Mike", "Lisa"}
	CustomScores   = [][]float64{
		{90, 85, 80, 95, 70, 88},
		{85, 92, 90, 85, 88, 95},
		{88, 80, 95, 90, 85, 82},
		{92, 88, 85, 88, 90, 90},
	}
)

type step struct {
	name string
	run  func(ctx context.Context, r *runner) error
}

type runner struct {
	cfg   *Config
	stats *Stats
	log   logger.Logger
	out   io.Writer
}

// Run executes every demo step in order and stops at the first failure.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	r := &runner{
		cfg:   cfg,
		stats: &Stats{StartTime: time.Now()},
		log:   logger.Named("demo"),
		out:   cfg.Out,
	}
	if r.out == nil {
		r.out = io.Discard
	}

	r.log.Info(ctx, "starting radar chart demo",
		logger.String("outDir", cfg.OutDir),
		logger.String("csvFile", cfg.CSVFile),
		logger.Any("verbose", cfg.Verbose))

	steps := []step{
		{"sample data", sampleStep},
		{"csv data", csvStep},
		{"custom data", customStep},
		{"individual charts", individualStep},
		{"single student", specialStep},
		{"combined view", combinedStep},
	}

	var runErr error
	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		r.log.Info(ctx, "running step", logger.Int("step", i+1), logger.String("name", s.name))
		r.stats.StepsRun++
		if err := s.run(ctx, r); err != nil {
			r.stats.StepsFailed++
			r.log.Error(ctx, "step failed", logger.String("name", s.name), logger.Error(err))
			runErr = fmt.Errorf("%s: %w", s.name, err)
			break
		}
	}

	r.stats.EndTime = time.Now()
	r.stats.Duration = r.stats.EndTime.Sub(r.stats.StartTime)
	r.displayFinalStats(ctx)

	if runErr != nil {
		return r.stats, runErr
	}
	r.log.Info(ctx, "demo completed successfully")
	return r.stats, nil
}

func sampleStep(ctx context.Context, r *runner) error {
	g, err := r.generator(sample.Generate(r.cfg.Seed))
	if err != nil {
		return err
	}
	if err := g.PrintSummary(r.out); err != nil {
		return err
	}
	return r.chart(ctx, g, app.ChartOptions{Title: "Sample Student Performance", SavePath: r.path(SampleChart)})
}

func csvStep(ctx context.Context, r *runner) error {
	path := r.cfg.CSVFile
	if path == "" {
		path = r.path(SampleCSV)
		if err := csvtable.Save(path, sample.Generate(r.cfg.Seed)); err != nil {
			return err
		}
		r.record(path)
	}
	t, err := csvtable.Resolve(path, r.cfg.Seed, csvtable.WithSampleFallback())
	if err != nil {
		return err
	}
	g, err := r.generator(t)
	if err != nil {
		return err
	}
	if err := g.PrintSummary(r.out); err != nil {
		return err
	}
	return r.chart(ctx, g, app.ChartOptions{Title: "Student Performance from CSV", SavePath: r.path(CSVChart)})
}

func customStep(ctx context.Context, r *runner) error {
	custom, err := table.New(CustomStudents, CustomSubjects, CustomScores)
	if err != nil {
		return err
	}
	path := r.path(CustomCSV)
	if err := csvtable.Save(path, custom); err != nil {
		return err
	}
	r.record(path)

	t, err := csvtable.Load(path)
	if err != nil {
		return err
	}
	g, err := r.generator(t)
	if err != nil {
		return err
	}
	if err := g.PrintSummary(r.out); err != nil {
		return err
	}
	return r.chart(ctx, g, app.ChartOptions{
		Title:    "Programming Skills Assessment",
		SavePath: r.path(CustomChart),
		Width:    customWidthIn * vg.Inch,
		Height:   customHeightIn * vg.Inch,
	})
}

func individualStep(ctx context.Context, r *runner) error {
	g, err := r.generator(sample.Generate(r.cfg.Seed))
	if err != nil {
		return err
	}
	res, err := g.GenerateAllIndividualCharts(ctx, r.path(IndividualDir), false)
	for _, p := range res.Outputs {
		r.record(p)
	}
	return err
}

func specialStep(ctx context.Context, r *runner) error {
	t := sample.Generate(r.cfg.Seed)
	entities := t.Entities()
	if len(entities) == 0 {
		return errors.New("sample table has no students")
	}
	g, err := r.generator(t)
	if err != nil {
		return err
	}
	first := entities[0]
	return r.individual(ctx, g, first, r.path(app.SafeName(first)+specialSuffix))
}

func combinedStep(ctx context.Context, r *runner) error {
	g, err := r.generator(sample.Generate(r.cfg.Seed))
	if err != nil {
		return err
	}
	return r.chart(ctx, g, app.ChartOptions{Title: "All Students - Combined View", SavePath: r.path(CombinedChart)})
}

func (r *runner) generator(t *table.Table) (*app.Generator, error) {
	return app.New(t, app.WithStyle(r.cfg.Style), app.WithLogger(r.log))
}

func (r *runner) chart(ctx context.Context, g *app.Generator, opts app.ChartOptions) error {
	if _, err := g.GenerateChart(ctx, opts); err != nil {
		return err
	}
	r.record(opts.SavePath)
	return nil
}

func (r *runner) individual(ctx context.Context, g *app.Generator, entity, path string) error {
	if _, err := g.GenerateIndividualChart(ctx, entity, app.ChartOptions{SavePath: path}); err != nil {
		return err
	}
	r.record(path)
	return nil
}

func (r *runner) path(name string) string {
	return filepath.Join(r.cfg.OutDir, name)
}

func (r *runner) record(path string) {
	r.stats.Files = append(r.stats.Files, path)
	if filepath.Ext(path) == ".png" {
		r.stats.ChartsWritten++
	}
}

// displayFinalStats logs the final run statistics.
func (r *runner) displayFinalStats(ctx context.Context) {
	var successRate float64
	if r.stats.StepsRun > 0 {
		successRate = float64(r.stats.StepsRun-r.stats.StepsFailed) / float64(r.stats.StepsRun) * percentageScale
	}
	r.log.Info(ctx, "final statistics",
		logger.Int("stepsRun", r.stats.StepsRun),
		logger.Int("stepsFailed", r.stats.StepsFailed),
		logger.Int("chartsWritten", r.stats.ChartsWritten),
		logger.Int("filesWritten", len(r.stats.Files)),
		logger.String("duration", r.stats.Duration.String()),
		logger.Float64("successRate", successRate))
}
