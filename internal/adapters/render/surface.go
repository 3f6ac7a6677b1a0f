package render

import (
	"image/color"
	"math"
	"strconv"

	"github.com/okian/radar/internal/domain/layout"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Drawing constants for the polar surface.
const (
	ringSegments   = 180
	labelMargin    = 0.16  // share of the half-extent kept for axis labels
	labelOffset    = 1.06  // dimension labels sit just outside the outer ring
	tickLabelAngle = 0.393 // ~22.5 degrees, between the first two axes
	axisAlignSlack = 0.1
)

//nolint:gochecknoglobals // fixed theme
var (
	gridColor  = color.Gray{Y: 0xb0}
	spineColor = color.Gray{Y: 0x40}
	textColor  = color.Gray{Y: 0x20}
	gridDashes = []vg.Length{vg.Points(2), vg.Points(2)}
)

// closedSeries is a series whose last value repeats the first.
type closedSeries struct {
	Label  string
	Values []float64
	Color  color.Color
}

// Surface is a plot.Plotter that draws a polar grid and the series polygons in
// canvas units, so the chart stays round whatever the figure's aspect ratio.
type Surface struct {
	Dimensions []string
	Angles     []float64
	Series     []closedSeries
	Style      Style
}

var _ plot.Plotter = (*Surface)(nil)

// Labels returns the series labels in drawing order.
func (s *Surface) Labels() []string {
	out := make([]string, len(s.Series))
	for i, cs := range s.Series {
		out[i] = cs.Label
	}
	return out
}

// Plot implements plot.Plotter.
func (s *Surface) Plot(c draw.Canvas, plt *plot.Plot) {
	center := c.Center()
	radius := s.radius(c)
	at := func(r, theta float64) vg.Point {
		r = math.Max(0, math.Min(s.Style.RadialMax, r))
		p := layout.Polar(r/s.Style.RadialMax, theta)
		return vg.Point{X: center.X + vg.Length(p.X)*radius, Y: center.Y + vg.Length(p.Y)*radius}
	}

	grid := draw.LineStyle{Color: gridColor, Width: vg.Points(0.5), Dashes: gridDashes}
	for _, tick := range s.Style.Ticks {
		c.StrokeLines(grid, ring(at, tick))
	}
	spokes := draw.LineStyle{Color: gridColor, Width: vg.Points(0.5)}
	for _, theta := range s.Angles[:len(s.Angles)-1] {
		end := at(s.Style.RadialMax, theta)
		c.StrokeLine2(spokes, center.X, center.Y, end.X, end.Y)
	}
	c.StrokeLines(draw.LineStyle{Color: spineColor, Width: vg.Points(1)}, ring(at, s.Style.RadialMax))

	for _, cs := range s.Series {
		pts := make([]vg.Point, len(cs.Values))
		for i, v := range cs.Values {
			pts[i] = at(v, s.Angles[i])
		}
		c.FillPolygon(withAlpha(cs.Color, s.Style.FillAlpha), pts)
		c.StrokeLines(s.lineStyle(cs), pts)
		glyph := s.glyphStyle(cs)
		for _, p := range pts[:len(pts)-1] {
			c.DrawGlyph(glyph, p)
		}
	}

	s.drawTickLabels(c, plt, at)
	s.drawDimensionLabels(c, plt, radius)
}

func (s *Surface) drawTickLabels(c draw.Canvas, plt *plot.Plot, at func(r, theta float64) vg.Point) {
	sty := s.textStyle(plt, s.Style.TickSize)
	sty.XAlign = text.XLeft
	sty.YAlign = text.YCenter
	for _, tick := range s.Style.Ticks {
		c.FillText(sty, at(tick, tickLabelAngle), strconv.FormatFloat(tick, 'f', -1, 64))
	}
}

func (s *Surface) drawDimensionLabels(c draw.Canvas, plt *plot.Plot, radius vg.Length) {
	sty := s.textStyle(plt, s.Style.LabelSize)
	center := c.Center()
	for i, name := range s.Dimensions {
		theta := s.Angles[i]
		sty.XAlign, sty.YAlign = labelAlignment(theta)
		p := layout.Polar(labelOffset, theta)
		c.FillText(sty, vg.Point{X: center.X + vg.Length(p.X)*radius, Y: center.Y + vg.Length(p.Y)*radius}, name)
	}
}

// labelAlignment anchors a label so it grows away from the chart.
func labelAlignment(theta float64) (text.XAlignment, text.YAlignment) {
	x, y := math.Cos(theta), math.Sin(theta)
	xa, ya := text.XCenter, text.YCenter
	switch {
	case x > axisAlignSlack:
		xa = text.XLeft
	case x < -axisAlignSlack:
		xa = text.XRight
	}
	switch {
	case y > axisAlignSlack:
		ya = text.YBottom
	case y < -axisAlignSlack:
		ya = text.YTop
	}
	return xa, ya
}

func (s *Surface) textStyle(plt *plot.Plot, size vg.Length) text.Style {
	sty := plt.Title.TextStyle
	sty.Color = textColor
	sty.Font.Size = size
	sty.Font.Weight = xfont.WeightNormal
	return sty
}

func (s *Surface) radius(c draw.Canvas) vg.Length {
	w := c.Max.X - c.Min.X
	h := c.Max.Y - c.Min.Y
	half := w
	if h < w {
		half = h
	}
	half /= 2
	return half * (1 - labelMargin)
}

func (s *Surface) lineStyle(cs closedSeries) draw.LineStyle {
	return draw.LineStyle{Color: cs.Color, Width: s.Style.LineWidth}
}

func (s *Surface) glyphStyle(cs closedSeries) draw.GlyphStyle {
	return draw.GlyphStyle{Color: cs.Color, Radius: s.Style.MarkerRadius, Shape: draw.CircleGlyph{}}
}

func (s *Surface) thumbnail(cs closedSeries) plot.Thumbnailer {
	return seriesThumb{
		fill:  withAlpha(cs.Color, s.Style.FillAlpha),
		line:  s.lineStyle(cs),
		glyph: s.glyphStyle(cs),
	}
}

// ring returns a closed circle of radius r approximated by line segments.
func ring(at func(r, theta float64) vg.Point, r float64) []vg.Point {
	pts := make([]vg.Point, ringSegments+1)
	for i := range pts {
		pts[i] = at(r, float64(i)/ringSegments*layout.FullTurn)
	}
	return pts
}

// seriesThumb draws a legend entry: translucent fill, outline and marker.
type seriesThumb struct {
	fill  color.Color
	line  draw.LineStyle
	glyph draw.GlyphStyle
}

func (t seriesThumb) Thumbnail(c *draw.Canvas) {
	box := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(t.fill, box)
	mid := c.Center()
	c.StrokeLine2(t.line, c.Min.X, mid.Y, c.Max.X, mid.Y)
	c.DrawGlyph(t.glyph, mid)
}
