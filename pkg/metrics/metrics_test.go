package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it uses the radar namespace", func() {
				So(manager.namespace, ShouldEqual, "radar")
				So(manager.subsystem, ShouldEqual, "chart")
				manager.chartsRendered.WithLabelValues("combined", "png").Inc()

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "radar_chart_rendered_total")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 2}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "unit")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 2})
				So(manager.customLabels["env"], ShouldEqual, "test")
			})

			Convey("And empty values keep the defaults", func() {
				m := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(prometheus.NewRegistry()))
				So(m.namespace, ShouldEqual, "radar")
				So(m.histogramBuckets, ShouldNotBeEmpty)
			})
		})

		Convey("When metrics are disabled", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithMetricsEnabled(false), WithPrometheusRegistry(registry))
			manager.tableEntities.Set(3)

			Convey("Then nothing is registered", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldBeEmpty)
				So(testutil.ToFloat64(manager.tableEntities), ShouldEqual, 3)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording chart renders", func() {
			before := testutil.ToFloat64(current().chartsRendered.WithLabelValues("individual", "png"))
			RecordChartRendered("individual", "png")
			RecordRenderLatency("individual", 12.5)

			Convey("Then the counter advances", func() {
				after := testutil.ToFloat64(current().chartsRendered.WithLabelValues("individual", "png"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When recording a render error", func() {
			before := testutil.ToFloat64(current().renderErrors.WithLabelValues("combined"))
			RecordRenderError("combined")
			So(testutil.ToFloat64(current().renderErrors.WithLabelValues("combined"))-before, ShouldEqual, 1)
		})

		Convey("When updating the table shape", func() {
			UpdateTableShape(5, 4)
			So(testutil.ToFloat64(current().tableEntities), ShouldEqual, 5)
			So(testutil.ToFloat64(current().tableDimensions), ShouldEqual, 4)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("/summary", "GET", "200")
				RecordHTTPRequestDuration("/summary", "GET", "200", 3)
				RecordErrorByEndpoint("/charts", "GET", "not_found")
			}, ShouldNotPanic)
		})

		Convey("When gathering the custom registry", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeEmpty)
		})
	})
}

func TestInit(t *testing.T) {
	Convey("Given the global metrics are re-initialized with options", t, func() {
		Init(
			WithNamespace("school"),
			WithSubsystem("report"),
			WithHistogramBuckets([]float64{1, 10}),
			WithCustomLabels(map[string]string{"class": "7b"}),
		)
		defer Init()

		RecordChartRendered("combined", "svg")
		RecordRenderLatency("combined", 4)

		Convey("Then the registry exposes the renamed, labelled metrics", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)

			byName := make(map[string]*dto.MetricFamily, len(families))
			for _, f := range families {
				byName[f.GetName()] = f
			}
			rendered, ok := byName["school_report_rendered_total"]
			So(ok, ShouldBeTrue)
			labels := map[string]string{}
			for _, lp := range rendered.GetMetric()[0].GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			So(labels["class"], ShouldEqual, "7b")

			latency := byName["school_report_render_latency_milliseconds"]
			So(latency, ShouldNotBeNil)
			So(latency.GetMetric()[0].GetHistogram().GetBucket(), ShouldHaveLength, 2)
		})
	})

	Convey("Given the global metrics are disabled", t, func() {
		Init(WithMetricsEnabled(false))
		defer Init()

		So(func() { RecordChartRendered("individual", "png") }, ShouldNotPanic)

		families, err := GetRegistry().Gather()
		So(err, ShouldBeNil)
		So(families, ShouldBeEmpty)
	})
}
