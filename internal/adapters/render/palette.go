package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/palette/brewer"
)

const (
	paletteName = "Set3"
	paletteSize = 12
)

// Palette returns n colors from the qualitative Set3 palette. Up to twelve
// colors are sampled evenly across the palette so that small groups still get
// well separated hues; larger groups cycle through it.
func Palette(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	p, err := brewer.GetPalette(brewer.TypeQualitative, paletteName, paletteSize)
	if err != nil {
		// Name and size are fixed and known to exist.
		panic(err)
	}
	base := p.Colors()

	out := make([]color.Color, n)
	for i := range out {
		out[i] = base[paletteIndex(i, n, len(base))]
	}
	return out
}

func paletteIndex(i, n, size int) int {
	if n > size {
		return i % size
	}
	if n == 1 {
		return 0
	}
	idx := int(float64(i) / float64(n-1) * float64(size))
	if idx >= size {
		idx = size - 1
	}
	return idx
}

// withAlpha returns c with its opacity replaced by alpha in [0, 1].
func withAlpha(c color.Color, alpha float64) color.Color {
	n, _ := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(math.Max(0, math.Min(1, alpha)) * math.MaxUint8))
	return n
}
