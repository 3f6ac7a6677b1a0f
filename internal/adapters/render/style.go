package render

import (
	"fmt"

	"gonum.org/v1/plot/vg"
)

// Default style constants.
const (
	DefaultRadialMax = 100
	DefaultDPI       = 300
	DefaultFillAlpha = 0.25
	DefaultWidth     = 10 * vg.Inch
	DefaultHeight    = 8 * vg.Inch
)

// DefaultTicks are the radial grid levels.
var DefaultTicks = []float64{20, 40, 60, 80, 100} //nolint:gochecknoglobals // default grid levels

// Style controls everything about a chart except its data.
type Style struct {
	// RadialMax is the value drawn at the outer ring. Radii are clamped to
	// [0, RadialMax].
	RadialMax float64
	// Ticks are the radial grid levels, each in (0, RadialMax].
	Ticks []float64
	// FillAlpha is the opacity of polygon fills.
	FillAlpha float64

	LineWidth    vg.Length
	MarkerRadius vg.Length
	TitleSize    vg.Length
	LabelSize    vg.Length
	TickSize     vg.Length

	// Width and Height are the figure size; DPI applies to raster output.
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// DefaultStyle returns the standard chart style: 0-100 range, ticks every 20,
// a 10x8 inch figure at 300 DPI.
func DefaultStyle() Style {
	return Style{
		RadialMax:    DefaultRadialMax,
		Ticks:        append([]float64(nil), DefaultTicks...),
		FillAlpha:    DefaultFillAlpha,
		LineWidth:    vg.Points(2),
		MarkerRadius: vg.Points(3),
		TitleSize:    vg.Points(16),
		LabelSize:    vg.Points(11),
		TickSize:     vg.Points(8),
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		DPI:          DefaultDPI,
	}
}

// Validate reports the first inconsistent setting.
func (s Style) Validate() error {
	switch {
	case s.RadialMax <= 0:
		return fmt.Errorf("%w: radial max %v must be positive", ErrInvalidStyle, s.RadialMax)
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: figure size %vx%v must be positive", ErrInvalidStyle, s.Width, s.Height)
	case s.DPI <= 0:
		return fmt.Errorf("%w: dpi %d must be positive", ErrInvalidStyle, s.DPI)
	case s.FillAlpha < 0 || s.FillAlpha > 1:
		return fmt.Errorf("%w: fill alpha %v outside [0, 1]", ErrInvalidStyle, s.FillAlpha)
	}
	for _, t := range s.Ticks {
		if t <= 0 || t > s.RadialMax {
			return fmt.Errorf("%w: tick %v outside (0, %v]", ErrInvalidStyle, t, s.RadialMax)
		}
	}
	return nil
}
