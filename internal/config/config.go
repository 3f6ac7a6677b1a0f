// Package config defines the tool's configuration and how it is loaded.
package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/okian/radar/internal/adapters/render"
	"github.com/okian/radar/internal/domain/sample"
	"github.com/okian/radar/internal/domain/summary"
	"github.com/okian/radar/pkg/logger"
	"github.com/okian/radar/pkg/metrics"
	"gonum.org/v1/plot/vg"
)

// Chart defaults.
const (
	DefaultTitle     = "Student Performance Radar Chart"
	DefaultOutput    = "radar_chart.png"
	DefaultOutputDir = "radar_charts"
	DefaultAddr      = ":9080"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is text, json or console.
	LogFormat string `koanf:"log_format"`

	// Title is the default combined chart title.
	Title string `koanf:"title"`
	// Output is the default combined chart file.
	Output string `koanf:"output"`
	// OutputDir receives batch individual charts.
	OutputDir string `koanf:"output_dir"`

	// Figure geometry in inches and raster resolution.
	WidthIn  float64 `koanf:"width_in"`
	HeightIn float64 `koanf:"height_in"`
	DPI      int     `koanf:"dpi"`

	RadialMax float64   `koanf:"radial_max"`
	Ticks     []float64 `koanf:"ticks"`
	FillAlpha float64   `koanf:"fill_alpha"`

	// Seed drives the sample data generator.
	Seed int64 `koanf:"seed"`
	// PreviewRows bounds the summary's data preview.
	PreviewRows int `koanf:"preview_rows"`
	// Show opens rendered charts in the system viewer.
	Show bool `koanf:"show"`

	// Addr configures the preview server listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Prometheus metric naming and registration.
	MetricsEnabled   bool              `koanf:"metrics_enabled"`
	MetricsNamespace string            `koanf:"metrics_namespace"`
	MetricsSubsystem string            `koanf:"metrics_subsystem"`
	MetricsBuckets   []float64         `koanf:"metrics_buckets"`
	MetricsLabels    map[string]string `koanf:"metrics_labels"`
}

var metricNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`) //nolint:gochecknoglobals // compiled once

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   logger.FormatText,
		Title:       DefaultTitle,
		Output:      DefaultOutput,
		OutputDir:   DefaultOutputDir,
		WidthIn:     float64(render.DefaultWidth / vg.Inch),
		HeightIn:    float64(render.DefaultHeight / vg.Inch),
		DPI:         render.DefaultDPI,
		RadialMax:   render.DefaultRadialMax,
		Ticks:       append([]float64(nil), render.DefaultTicks...),
		FillAlpha:   render.DefaultFillAlpha,
		Seed:        sample.DefaultSeed,
		PreviewRows: summary.DefaultPreviewRows,
		Addr:        DefaultAddr,

		MetricsEnabled:   true,
		MetricsNamespace: metrics.DefaultNamespace,
		MetricsSubsystem: metrics.DefaultSubsystem,
		MetricsBuckets:   append([]float64(nil), metrics.DefaultBuckets...),
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	formats := []string{logger.FormatText, logger.FormatJSON, logger.FormatConsole}
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.PreviewRows < 0:
		return fmt.Errorf("%w: preview_rows must not be negative", ErrInvalidConfig)
	case !slices.Contains(formats, strings.ToLower(c.LogFormat)):
		return fmt.Errorf("%w: log_format %q is not one of %s", ErrInvalidConfig, c.LogFormat, strings.Join(formats, ", "))
	case c.Output != "" && !render.SupportedFormat(render.Format(c.Output)):
		return fmt.Errorf("%w: output %q: %w", ErrInvalidConfig, c.Output, render.ErrUnsupportedFormat)
	}
	if err := c.Style().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return c.validateMetrics()
}

func (c *Config) validateMetrics() error {
	for key, name := range map[string]string{"metrics_namespace": c.MetricsNamespace, "metrics_subsystem": c.MetricsSubsystem} {
		if name != "" && !metricNamePattern.MatchString(name) {
			return fmt.Errorf("%w: %s %q is not a valid metric name part", ErrInvalidConfig, key, name)
		}
	}
	for i := 1; i < len(c.MetricsBuckets); i++ {
		if c.MetricsBuckets[i] <= c.MetricsBuckets[i-1] {
			return fmt.Errorf("%w: metrics_buckets must be strictly increasing", ErrInvalidConfig)
		}
	}
	for name := range c.MetricsLabels {
		if !metricNamePattern.MatchString(name) || strings.HasPrefix(name, "__") {
			return fmt.Errorf("%w: metrics_labels key %q is not a valid label name", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Style converts the chart settings into a render style.
func (c *Config) Style() render.Style {
	s := render.DefaultStyle()
	s.Width = vg.Length(c.WidthIn) * vg.Inch
	s.Height = vg.Length(c.HeightIn) * vg.Inch
	s.DPI = c.DPI
	s.RadialMax = c.RadialMax
	s.Ticks = append([]float64(nil), c.Ticks...)
	s.FillAlpha = c.FillAlpha
	return s
}

// LoggerOptions returns the logger settings as Init options.
func (c *Config) LoggerOptions() []logger.Option {
	return []logger.Option{logger.WithLevel(c.LogLevel), logger.WithFormat(c.LogFormat)}
}

// MetricsOptions returns the metrics settings as Init options.
func (c *Config) MetricsOptions() []metrics.Option {
	return []metrics.Option{
		metrics.WithMetricsEnabled(c.MetricsEnabled),
		metrics.WithNamespace(c.MetricsNamespace),
		metrics.WithSubsystem(c.MetricsSubsystem),
		metrics.WithHistogramBuckets(append([]float64(nil), c.MetricsBuckets...)),
		metrics.WithCustomLabels(c.MetricsLabels),
	}
}
