package demo

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/radar/internal/adapters/csvtable"
	"github.com/okian/radar/internal/adapters/render"
	"github.com/okian/radar/internal/domain/sample"
	"github.com/okian/radar/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/plot/vg"
)

func init() {
	_ = logger.Init(logger.WithWriter(io.Discard))
}

func smallStyle() render.Style {
	s := render.DefaultStyle()
	s.Width, s.Height, s.DPI = 3*vg.Inch, 2*vg.Inch, 30
	return s
}

func TestRun(t *testing.T) {
	Convey("Given a demo configuration", t, func() {
		dir := t.TempDir()
		var out bytes.Buffer
		cfg := &Config{OutDir: dir, Seed: sample.DefaultSeed, Style: smallStyle(), Out: &out}

		Convey("When the demo runs without a CSV file", func() {
			stats, err := Run(context.Background(), cfg)

			Convey("Then every step succeeds", func() {
				So(err, ShouldBeNil)
				So(stats.StepsRun, ShouldEqual, 6)
				So(stats.StepsFailed, ShouldEqual, 0)
				So(stats.Duration >= 0, ShouldBeTrue)
			})

			Convey("Then every chart and data file exists", func() {
				for _, name := range []string{SampleChart, SampleCSV, CSVChart, CustomCSV, CustomChart, CombinedChart, "Alice_special_chart.png"} {
					_, statErr := os.Stat(filepath.Join(dir, name))
					So(statErr, ShouldBeNil)
				}
				entries, readErr := os.ReadDir(filepath.Join(dir, IndividualDir))
				So(readErr, ShouldBeNil)
				So(len(entries), ShouldEqual, 5)
				So(stats.ChartsWritten, ShouldEqual, 5+5)
			})

			Convey("Then the custom data round-trips through CSV", func() {
				tbl, loadErr := csvtable.Load(filepath.Join(dir, CustomCSV))
				So(loadErr, ShouldBeNil)
				So(tbl.Entities(), ShouldResemble, CustomStudents)
				So(tbl.Dimensions(), ShouldResemble, CustomSubjects)
				So(tbl.Values(), ShouldResemble, CustomScores)
			})

			Convey("Then summaries are written", func() {
				So(out.String(), ShouldContainSubstring, "Programming")
			})
		})

		Convey("When the CSV file is missing", func() {
			cfg.CSVFile = filepath.Join(dir, "absent.csv")
			stats, err := Run(context.Background(), cfg)

			Convey("Then the sample table is used instead", func() {
				So(err, ShouldBeNil)
				So(stats.StepsFailed, ShouldEqual, 0)
				_, statErr := os.Stat(filepath.Join(dir, CSVChart))
				So(statErr, ShouldBeNil)
			})
		})

		Convey("When the CSV file is malformed", func() {
			bad := filepath.Join(dir, "bad.csv")
			So(os.WriteFile(bad, []byte("Student,Math\nAlice,lots\n"), 0o600), ShouldBeNil)
			cfg.CSVFile = bad

			stats, err := Run(context.Background(), cfg)

			Convey("Then the run stops at the CSV step", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldStartWith, "csv data:")
				So(stats.StepsRun, ShouldEqual, 2)
				So(stats.StepsFailed, ShouldEqual, 1)
			})
		})

		Convey("When the context is already canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			stats, err := Run(ctx, cfg)

			Convey("Then no step runs", func() {
				So(err, ShouldEqual, context.Canceled)
				So(stats.StepsRun, ShouldEqual, 0)
			})
		})
	})
}

func TestShowHelp(t *testing.T) {
	Convey("Given the help text", t, func() {
		var buf bytes.Buffer
		ShowHelp(&buf)
		So(buf.String(), ShouldContainSubstring, "-csv string")
		So(buf.String(), ShouldContainSubstring, "-verbose")
	})
}

func TestSetupLogging(t *testing.T) {
	Convey("Given a log file path", t, func() {
		path := filepath.Join(t.TempDir(), "demo.log")

		closeFn, err := SetupLogging(path, true)
		So(err, ShouldBeNil)
		logger.Get().Debug(context.Background(), "debug line")
		So(closeFn(), ShouldBeNil)
		_ = logger.Init(logger.WithWriter(io.Discard))

		data, readErr := os.ReadFile(path)
		So(readErr, ShouldBeNil)
		So(string(data), ShouldContainSubstring, "debug line")
		So(string(data), ShouldContainSubstring, "logging to file")
	})

	Convey("Given an unwritable log path", t, func() {
		_, err := SetupLogging(filepath.Join(t.TempDir(), "missing", "demo.log"), false)
		So(err, ShouldNotBeNil)
	})
}
