// Package layout computes the angular layout of a radar chart and turns score
// rows into closed polygons over it.
package layout

import (
	"fmt"
	"math"
)

// FullTurn is one revolution in radians.
const FullTurn = 2 * math.Pi

// Angles returns d evenly spaced angles over a full turn, starting at 0, with
// the first angle repeated at the end so that a polygon drawn over them closes.
func Angles(d int) ([]float64, error) {
	if d <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNoDimensions, d)
	}
	angles := make([]float64, d+1)
	for i := 0; i < d; i++ {
		angles[i] = float64(i) / float64(d) * FullTurn
	}
	angles[d] = angles[0]
	return angles, nil
}

// Step returns the angular distance between neighbouring axes.
func Step(d int) (float64, error) {
	if d <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrNoDimensions, d)
	}
	return FullTurn / float64(d), nil
}

// Close returns a copy of values with the first value appended.
func Close(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrNoDimensions
	}
	closed := make([]float64, len(values)+1)
	copy(closed, values)
	closed[len(values)] = values[0]
	return closed, nil
}

// Point is a cartesian position in data units.
type Point struct {
	X, Y float64
}

// Project maps a closed series onto its closed angle layout, returning one
// point per angle. Angle 0 points along +X and angles grow counter-clockwise.
func Project(angles, series []float64) ([]Point, error) {
	if len(angles) != len(series) {
		return nil, fmt.Errorf("%w: %d angles, %d values", ErrLength, len(angles), len(series))
	}
	pts := make([]Point, len(angles))
	for i, theta := range angles {
		pts[i] = Polar(series[i], theta)
	}
	return pts, nil
}

// Polar converts radius r at angle theta to cartesian coordinates.
func Polar(r, theta float64) Point {
	return Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}
