// Package render draws radar charts on a gonum/plot canvas and writes them as
// image files.
package render

import (
	"fmt"
	"image/color"

	"github.com/okian/radar/internal/domain/layout"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Series is one entity's polygon.
type Series struct {
	Label  string
	Values []float64
	Color  color.Color
}

// Chart is the data half of a radar chart.
type Chart struct {
	Title      string
	Dimensions []string
	Series     []Series
}

// Validate checks that the chart has axes and that every series has one
// value per axis.
func (ch Chart) Validate() error {
	if len(ch.Dimensions) == 0 {
		return fmt.Errorf("chart %q: %w", ch.Title, layout.ErrNoDimensions)
	}
	for _, s := range ch.Series {
		if len(s.Values) != len(ch.Dimensions) {
			return fmt.Errorf("%w: %q has %d values for %d dimensions", ErrSeriesLength, s.Label, len(s.Values), len(ch.Dimensions))
		}
	}
	return nil
}

// Figure is a built chart ready to be written.
type Figure struct {
	Plot    *plot.Plot
	Surface *Surface
	Style   Style
}

// Build lays the chart out on a new plot. Series without a color get one from
// Palette by position.
func Build(ch Chart, style Style) (*Figure, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}

	angles, err := layout.Angles(len(ch.Dimensions))
	if err != nil {
		return nil, err
	}

	colors := Palette(len(ch.Series))
	surface := &Surface{
		Dimensions: append([]string(nil), ch.Dimensions...),
		Angles:     angles,
		Style:      style,
		Series:     make([]closedSeries, 0, len(ch.Series)),
	}
	for i, s := range ch.Series {
		closed, err := layout.Close(s.Values)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Label, err)
		}
		c := s.Color
		if c == nil {
			c = colors[i]
		}
		surface.Series = append(surface.Series, closedSeries{Label: s.Label, Values: closed, Color: c})
	}

	p := plot.New()
	p.HideAxes()
	p.Title.Text = ch.Title
	p.Title.TextStyle.Font.Size = style.TitleSize
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.Padding = vg.Points(20)
	p.Add(surface)

	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = style.LabelSize
	for _, s := range surface.Series {
		p.Legend.Add(s.Label, surface.thumbnail(s))
	}

	return &Figure{Plot: p, Surface: surface, Style: style}, nil
}
