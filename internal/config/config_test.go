package config_test

import (
	"errors"
	"testing"

	"github.com/okian/radar/internal/adapters/render"
	"github.com/okian/radar/internal/config"
	"github.com/okian/radar/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/plot/vg"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Title, convey.ShouldEqual, "Student Performance Radar Chart")
			convey.So(cfg.Output, convey.ShouldEqual, "radar_chart.png")
			convey.So(cfg.OutputDir, convey.ShouldEqual, "radar_charts")
			convey.So(cfg.WidthIn, convey.ShouldEqual, 10)
			convey.So(cfg.HeightIn, convey.ShouldEqual, 8)
			convey.So(cfg.DPI, convey.ShouldEqual, 300)
			convey.So(cfg.Seed, convey.ShouldEqual, 42)
			convey.So(cfg.PreviewRows, convey.ShouldEqual, 5)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then its style matches the renderer defaults", func() {
			convey.So(cfg.Style(), convey.ShouldResemble, render.DefaultStyle())
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one bad setting", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = "" }},
			{"negative preview", func(c *config.Config) { c.PreviewRows = -1 }},
			{"unknown format", func(c *config.Config) { c.LogFormat = "xml" }},
			{"bad output", func(c *config.Config) { c.Output = "chart.bmp" }},
			{"zero dpi", func(c *config.Config) { c.DPI = 0 }},
			{"tick over max", func(c *config.Config) { c.Ticks = []float64{150} }},
			{"zero width", func(c *config.Config) { c.WidthIn = 0 }},
			{"bad namespace", func(c *config.Config) { c.MetricsNamespace = "my-school" }},
			{"bad subsystem", func(c *config.Config) { c.MetricsSubsystem = "9charts" }},
			{"unsorted buckets", func(c *config.Config) { c.MetricsBuckets = []float64{10, 5} }},
			{"reserved label", func(c *config.Config) { c.MetricsLabels = map[string]string{"__name": "x"} }},
			{"empty label", func(c *config.Config) { c.MetricsLabels = map[string]string{"": "x"} }},
		}

		for _, tc := range cases {
			cfg := config.New()
			tc.mutate(cfg)

			convey.Convey("When "+tc.name, func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})

	convey.Convey("Given a custom figure", t, func() {
		cfg := config.New()
		cfg.WidthIn, cfg.HeightIn, cfg.DPI = 12, 10, 150

		convey.Convey("Then the style uses it", func() {
			s := cfg.Style()
			convey.So(s.Width, convey.ShouldEqual, 12*vg.Inch)
			convey.So(s.Height, convey.ShouldEqual, 10*vg.Inch)
			convey.So(s.DPI, convey.ShouldEqual, 150)
		})

		convey.Convey("And the logger options follow the config", func() {
			convey.So(cfg.LoggerOptions(), convey.ShouldHaveLength, 2)
		})
	})
}

func TestConfig_MetricsOptions(t *testing.T) {
	convey.Convey("Given metric settings in the config", t, func() {
		cfg := config.New()
		cfg.MetricsNamespace = "school"
		cfg.MetricsLabels = map[string]string{"class": "7b"}
		convey.So(cfg.Validate(), convey.ShouldBeNil)

		metrics.Init(cfg.MetricsOptions()...)
		defer metrics.Init()
		metrics.UpdateTableShape(4, 6)

		convey.Convey("Then the global registry uses them", func() {
			families, err := metrics.GetRegistry().Gather()
			convey.So(err, convey.ShouldBeNil)
			var found bool
			for _, f := range families {
				if f.GetName() != "school_chart_table_dimensions" {
					continue
				}
				found = true
				convey.So(f.GetMetric()[0].GetGauge().GetValue(), convey.ShouldEqual, 6)
				convey.So(f.GetMetric()[0].GetLabel()[0].GetName(), convey.ShouldEqual, "class")
			}
			convey.So(found, convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given metrics disabled in the config", t, func() {
		cfg := config.New()
		cfg.MetricsEnabled = false

		metrics.Init(cfg.MetricsOptions()...)
		defer metrics.Init()
		metrics.UpdateTableShape(1, 1)

		families, err := metrics.GetRegistry().Gather()
		convey.So(err, convey.ShouldBeNil)
		convey.So(families, convey.ShouldBeEmpty)
	})
}
