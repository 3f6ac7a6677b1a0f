package launcher_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/radar/internal/adapters/csvtable"
	"github.com/okian/radar/internal/adapters/render"
	"github.com/okian/radar/internal/app"
	"github.com/okian/radar/internal/domain/sample"
	"github.com/okian/radar/internal/domain/table"
	"github.com/okian/radar/internal/launcher"
	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/plot/vg"
)

func smallGenerator(t *table.Table) (*app.Generator, error) {
	style := render.DefaultStyle()
	style.Width, style.Height, style.DPI = 3*vg.Inch, 2*vg.Inch, 40
	return app.New(t, app.WithStyle(style))
}

func run(input string) (string, error) {
	var out bytes.Buffer
	l := launcher.New(strings.NewReader(input), &out, launcher.WithShow(false), launcher.WithGenerator(smallGenerator))
	err := l.Run(context.Background())
	return out.String(), err
}

func TestLauncher(t *testing.T) {
	Convey("Given the interactive launcher", t, func() {
		dir := t.TempDir()

		Convey("When choosing sample data with a custom title and file", func() {
			out := filepath.Join(dir, "mine.png")
			text, err := run("1\nMy Class\n" + out + "\n3\n")

			Convey("Then the summary is printed and the chart saved", func() {
				So(err, ShouldBeNil)
				So(text, ShouldContainSubstring, "Radar Chart Generator")
				So(text, ShouldContainSubstring, "Number of students: 5")
				So(text, ShouldContainSubstring, "Chart saved as '"+out+"'")
				So(text, ShouldContainSubstring, "Goodbye!")
				_, statErr := os.Stat(out)
				So(statErr, ShouldBeNil)
			})
		})

		Convey("When accepting the defaults", func() {
			t.Chdir(dir)
			text, err := run("1\n\n\n3\n")

			Convey("Then the default file name is used", func() {
				So(err, ShouldBeNil)
				So(text, ShouldContainSubstring, "Chart saved as 'radar_chart.png'")
				_, statErr := os.Stat(filepath.Join(dir, launcher.DefaultFilename))
				So(statErr, ShouldBeNil)
			})
		})

		Convey("When loading a CSV file", func() {
			csvPath := filepath.Join(dir, "scores.csv")
			So(csvtable.Save(csvPath, sample.Generate(7)), ShouldBeNil)
			out := filepath.Join(dir, "csv.png")

			text, err := run("2\n" + csvPath + "\n\n" + out + "\n3\n")

			Convey("Then the chart is rendered from it", func() {
				So(err, ShouldBeNil)
				So(text, ShouldContainSubstring, "Chart saved as '"+out+"'")
			})
		})

		Convey("When the CSV file does not exist", func() {
			text, err := run("2\nmissing.csv\n3\n")

			Convey("Then an error is printed and the menu continues", func() {
				So(err, ShouldBeNil)
				So(text, ShouldContainSubstring, "Error: File 'missing.csv' not found.")
				So(strings.Count(text, "Options:"), ShouldEqual, 2)
			})
		})

		Convey("When the CSV file is malformed", func() {
			bad := filepath.Join(dir, "bad.csv")
			So(os.WriteFile(bad, []byte("S,X\nA,ten\n"), 0o600), ShouldBeNil)

			text, err := run("2\n" + bad + "\n3\n")

			Convey("Then the processing error is printed", func() {
				So(err, ShouldBeNil)
				So(text, ShouldContainSubstring, "Error processing file:")
				So(text, ShouldContainSubstring, "Goodbye!")
			})
		})

		Convey("When the choice is invalid", func() {
			text, err := run("9\n3\n")
			So(err, ShouldBeNil)
			So(text, ShouldContainSubstring, "Invalid choice. Please enter 1, 2, or 3.")
		})

		Convey("When input ends early", func() {
			text, err := run("1\nTitle only")

			Convey("Then the loop ends cleanly", func() {
				So(err, ShouldBeNil)
				So(text, ShouldNotContainSubstring, "Chart saved")
			})
		})
	})
}
