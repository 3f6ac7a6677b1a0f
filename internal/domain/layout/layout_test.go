package layout_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/radar/internal/domain/layout"
	. "github.com/smartystreets/goconvey/convey"
)

const epsilon = 1e-12

func TestAngles(t *testing.T) {
	Convey("Given three dimensions", t, func() {
		angles, err := layout.Angles(3)

		Convey("Then the layout is closed over a full turn", func() {
			So(err, ShouldBeNil)
			So(angles, ShouldHaveLength, 4)
			So(angles[0], ShouldEqual, 0)
			So(angles[1], ShouldAlmostEqual, 2*math.Pi/3, epsilon)
			So(angles[2], ShouldAlmostEqual, 4*math.Pi/3, epsilon)
			// The closing angle repeats the first one, i.e. 2π modulo a turn.
			So(angles[3], ShouldEqual, angles[0])
		})
	})

	Convey("Given any dimension count from 1 to 64", t, func() {
		for d := 1; d <= 64; d++ {
			angles, err := layout.Angles(d)
			So(err, ShouldBeNil)
			So(angles, ShouldHaveLength, d+1)
			So(angles[d], ShouldEqual, angles[0])

			step, stepErr := layout.Step(d)
			So(stepErr, ShouldBeNil)
			for i := 1; i < d; i++ {
				So(angles[i], ShouldBeGreaterThan, angles[i-1])
				So(angles[i]-angles[i-1], ShouldAlmostEqual, step, 1e-9)
			}
		}
	})

	Convey("Given zero dimensions", t, func() {
		_, err := layout.Angles(0)
		_, stepErr := layout.Step(-1)

		Convey("Then it is rejected explicitly", func() {
			So(errors.Is(err, layout.ErrNoDimensions), ShouldBeTrue)
			So(errors.Is(stepErr, layout.ErrNoDimensions), ShouldBeTrue)
		})
	})
}

func TestClose(t *testing.T) {
	Convey("Given entity A's scores", t, func() {
		values := []float64{10, 20, 30}
		closed, err := layout.Close(values)

		Convey("Then the first score is appended", func() {
			So(err, ShouldBeNil)
			So(closed, ShouldResemble, []float64{10, 20, 30, 10})
			So(values, ShouldResemble, []float64{10, 20, 30})
		})
	})

	Convey("Given a single score", t, func() {
		closed, err := layout.Close([]float64{7})
		So(err, ShouldBeNil)
		So(closed, ShouldResemble, []float64{7, 7})
	})

	Convey("Given no scores", t, func() {
		_, err := layout.Close(nil)
		So(errors.Is(err, layout.ErrNoDimensions), ShouldBeTrue)
	})
}

func TestProject(t *testing.T) {
	Convey("Given a closed square layout", t, func() {
		angles, err := layout.Angles(4)
		So(err, ShouldBeNil)
		series, err := layout.Close([]float64{1, 2, 3, 4})
		So(err, ShouldBeNil)

		pts, err := layout.Project(angles, series)

		Convey("Then points follow the axes counter-clockwise", func() {
			So(err, ShouldBeNil)
			So(pts, ShouldHaveLength, 5)
			So(pts[0].X, ShouldAlmostEqual, 1, epsilon)
			So(pts[1].Y, ShouldAlmostEqual, 2, epsilon)
			So(pts[2].X, ShouldAlmostEqual, -3, epsilon)
			So(pts[3].Y, ShouldAlmostEqual, -4, epsilon)
			So(pts[4], ShouldResemble, pts[0])
		})
	})

	Convey("Given mismatched lengths", t, func() {
		_, err := layout.Project([]float64{0, 1}, []float64{1})
		So(errors.Is(err, layout.ErrLength), ShouldBeTrue)
	})
}
