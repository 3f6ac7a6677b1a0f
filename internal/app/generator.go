// Package app renders radar charts for a table of scores: one combined chart,
// one chart per entity, or a batch of per-entity charts.
package app

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/okian/radar/internal/adapters/render"
	"github.com/okian/radar/internal/domain/summary"
	"github.com/okian/radar/internal/domain/table"
	"github.com/okian/radar/pkg/logger"
	"github.com/okian/radar/pkg/metrics"
	"gonum.org/v1/plot/vg"
)

// Chart kinds used in logs and metrics.
const (
	KindCombined   = "combined"
	KindIndividual = "individual"
)

// Defaults for chart files.
const (
	DefaultBatchDir  = "radar_charts"
	defaultFormat    = "png"
	batchFileSuffix  = "_radar_chart.png"
	individualFormat = "%s - Performance Radar Chart"
)

// ChartOptions controls a single render. Zero values keep the generator's
// defaults.
type ChartOptions struct {
	Title string
	// SavePath is where the chart is written; empty skips writing.
	SavePath string
	// Show passes the chart to the display.
	Show bool
	// Width and Height override the style's figure size.
	Width, Height vg.Length
}

// Generator holds a table and renders charts from it. It is safe for
// concurrent use since the table is immutable.
type Generator struct {
	table       *table.Table
	colors      []color.Color
	style       render.Style
	display     Display
	previewRows int
	logger      logger.Logger
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithStyle sets the chart style.
func WithStyle(s render.Style) Option {
	return func(g *Generator) {
		g.style = s
	}
}

// WithDisplay sets where shown charts go.
func WithDisplay(d Display) Option {
	return func(g *Generator) {
		if d != nil {
			g.display = d
		}
	}
}

// WithPreviewRows sets how many rows the summary previews.
func WithPreviewRows(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.previewRows = n
		}
	}
}

// New constructs a Generator for t.
func New(t *table.Table, opts ...Option) (*Generator, error) {
	if t == nil {
		return nil, ErrNoTable
	}
	g := &Generator{
		table:       t,
		colors:      render.Palette(t.NumEntities()),
		style:       render.DefaultStyle(),
		display:     SystemViewer{},
		previewRows: summary.DefaultPreviewRows,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.style.Validate(); err != nil {
		return nil, err
	}
	metrics.UpdateTableShape(t.NumEntities(), t.NumDimensions())
	return g, nil
}

// Table returns the generator's table.
func (g *Generator) Table() *table.Table { return g.table }

// Style returns the generator's chart style.
func (g *Generator) Style() render.Style { return g.style }

// GenerateChart renders every entity on one chart.
func (g *Generator) GenerateChart(ctx context.Context, opts ChartOptions) (*render.Figure, error) {
	series := make([]render.Series, g.table.NumEntities())
	for i, name := range g.table.Entities() {
		series[i] = render.Series{Label: name, Values: g.table.RowAt(i), Color: g.colors[i]}
	}
	return g.produce(ctx, KindCombined, g.chart(opts.Title, series), opts)
}

// GenerateIndividualChart renders one entity alone, in the color it has on the
// combined chart. The title defaults to "<entity> - Performance Radar Chart".
func (g *Generator) GenerateIndividualChart(ctx context.Context, entity string, opts ChartOptions) (*render.Figure, error) {
	s, err := g.series(entity)
	if err != nil {
		metrics.RecordRenderError(KindIndividual)
		return nil, err
	}
	if opts.Title == "" {
		opts.Title = fmt.Sprintf(individualFormat, entity)
	}
	return g.produce(ctx, KindIndividual, g.chart(opts.Title, []render.Series{s}), opts)
}

// WriteChart renders the named entities, or all of them when none are given,
// to w in format.
func (g *Generator) WriteChart(ctx context.Context, w io.Writer, format, title string, entities ...string) (int64, error) {
	kind := KindCombined
	if len(entities) == 1 {
		kind = KindIndividual
	}
	var series []render.Series
	if len(entities) == 0 {
		for i, name := range g.table.Entities() {
			series = append(series, render.Series{Label: name, Values: g.table.RowAt(i), Color: g.colors[i]})
		}
	} else {
		for _, name := range entities {
			s, err := g.series(name)
			if err != nil {
				metrics.RecordRenderError(kind)
				return 0, err
			}
			series = append(series, s)
		}
	}

	start := time.Now()
	fig, err := render.Build(g.chart(title, series), g.style)
	if err != nil {
		metrics.RecordRenderError(kind)
		return 0, err
	}
	n, err := fig.WriteTo(w, format)
	if err != nil {
		metrics.RecordRenderError(kind)
		return n, err
	}
	g.observe(ctx, kind, format, "", len(series), start)
	return n, nil
}

// Summary describes the table.
func (g *Generator) Summary() summary.Report {
	return summary.Describe(g.table, g.previewRows)
}

// PrintSummary writes the human-readable summary to w.
func (g *Generator) PrintSummary(w io.Writer) error {
	r := g.Summary()
	if _, err := r.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func (g *Generator) chart(title string, series []render.Series) render.Chart {
	return render.Chart{Title: title, Dimensions: g.table.Dimensions(), Series: series}
}

func (g *Generator) series(entity string) (render.Series, error) {
	i := g.table.Index(entity)
	if i < 0 {
		return render.Series{}, fmt.Errorf("%w: %q", table.ErrUnknownEntity, entity)
	}
	return render.Series{Label: entity, Values: g.table.RowAt(i), Color: g.colors[i]}, nil
}

// produce builds the figure, writes it when a path is set and shows it when
// asked. Display failures are logged only.
func (g *Generator) produce(ctx context.Context, kind string, ch render.Chart, opts ChartOptions) (*render.Figure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	style := g.style
	if opts.Width > 0 {
		style.Width = opts.Width
	}
	if opts.Height > 0 {
		style.Height = opts.Height
	}

	fig, err := render.Build(ch, style)
	if err != nil {
		metrics.RecordRenderError(kind)
		g.logger.Error(ctx, "failed to build chart", logger.String("kind", kind), logger.String("title", ch.Title), logger.Error(err))
		return nil, err
	}

	if opts.SavePath != "" {
		if err := fig.Save(opts.SavePath); err != nil {
			metrics.RecordRenderError(kind)
			g.logger.Error(ctx, "failed to save chart", logger.String("path", opts.SavePath), logger.Error(err))
			return nil, err
		}
	}
	g.observe(ctx, kind, render.Format(opts.SavePath), opts.SavePath, len(ch.Series), start)

	if opts.Show {
		g.show(ctx, fig, opts.SavePath)
	}
	return fig, nil
}

func (g *Generator) observe(ctx context.Context, kind, format, path string, series int, start time.Time) {
	if format == "" {
		format = "none"
	}
	latency := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordChartRendered(kind, format)
	metrics.RecordRenderLatency(kind, latency)
	g.logger.Info(ctx, "chart rendered",
		logger.String("kind", kind),
		logger.String("path", path),
		logger.Int("series", series),
		logger.Float64("latency_ms", latency),
	)
}

// show hands the chart to the display. Unsaved charts go through a
// temporary PNG.
func (g *Generator) show(ctx context.Context, fig *render.Figure, path string) {
	if path == "" {
		f, err := os.CreateTemp("", "radar-*."+defaultFormat)
		if err != nil {
			g.logger.Warn(ctx, "failed to create preview file", logger.Error(err))
			return
		}
		path = f.Name()
		_, werr := fig.WriteTo(f, defaultFormat)
		if cerr := f.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			g.logger.Warn(ctx, "failed to write preview file", logger.Error(werr))
			return
		}
	}
	if err := g.display.Show(ctx, path); err != nil {
		g.logger.Warn(ctx, "failed to display chart", logger.String("path", path), logger.Error(err))
	}
}

// BatchResult reports one GenerateAllIndividualCharts run.
type BatchResult struct {
	RunID    string
	Dir      string
	Outputs  []string
	Failures []BatchFailure
}

// BatchFailure is one entity whose chart could not be produced.
type BatchFailure struct {
	Entity string
	Err    error
}

// GenerateAllIndividualCharts writes one chart per entity into dir, named
// <entity>_radar_chart.png with unsafe characters replaced. A failing entity
// does not stop the batch; failures are collected and returned together,
// wrapped in ErrBatchIncomplete. Cancelling ctx stops before the next entity.
func (g *Generator) GenerateAllIndividualCharts(ctx context.Context, dir string, show bool) (BatchResult, error) {
	if dir == "" {
		dir = DefaultBatchDir
	}
	res := BatchResult{RunID: uuid.NewString(), Dir: dir}
	log := g.logger.Named("batch")

	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return res, fmt.Errorf("failed to create output directory: %w", err)
	}

	log.Info(ctx, "generating individual charts",
		logger.String("run_id", res.RunID),
		logger.String("dir", dir),
		logger.Int("entities", g.table.NumEntities()),
	)

	names := newFileNamer()
	var errs []error
	for _, entity := range g.table.Entities() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		path := filepath.Join(dir, names.next(entity)+batchFileSuffix)
		if _, err := g.GenerateIndividualChart(ctx, entity, ChartOptions{SavePath: path, Show: show}); err != nil {
			res.Failures = append(res.Failures, BatchFailure{Entity: entity, Err: err})
			errs = append(errs, fmt.Errorf("%s: %w", entity, err))
			continue
		}
		res.Outputs = append(res.Outputs, path)
	}

	log.Info(ctx, "individual charts done",
		logger.String("run_id", res.RunID),
		logger.Int("written", len(res.Outputs)),
		logger.Int("failed", len(res.Failures)),
	)
	if len(errs) > 0 {
		return res, fmt.Errorf("%w: %w", ErrBatchIncomplete, errors.Join(errs...))
	}
	return res, nil
}
