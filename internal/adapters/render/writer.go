package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0644
)

// Format returns the image format implied by path's extension, lower-cased and
// without the dot.
func Format(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// SupportedFormat reports whether format can be written.
func SupportedFormat(format string) bool {
	switch strings.ToLower(format) {
	case "png", "jpg", "jpeg", "tif", "tiff", "svg", "pdf", "eps":
		return true
	default:
		return false
	}
}

// WriteTo draws the figure in format and writes it to w. Raster formats use
// the style's DPI.
func (f *Figure) WriteTo(w io.Writer, format string) (int64, error) {
	c, err := f.canvas(format)
	if err != nil {
		return 0, err
	}
	f.Plot.Draw(draw.New(c))
	n, err := c.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("failed to write %s image: %w", format, err)
	}
	return n, nil
}

// Save writes the figure to path, choosing the format from the extension.
// Missing parent directories are created and an existing file is replaced.
func (f *Figure) Save(path string) (err error) {
	format := Format(path)
	if !SupportedFormat(format) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	_, err = f.WriteTo(file, format)
	return err
}

func (f *Figure) canvas(format string) (vg.CanvasWriterTo, error) {
	switch strings.ToLower(format) {
	case "png":
		return vgimg.PngCanvas{Canvas: f.raster()}, nil
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: f.raster()}, nil
	case "tif", "tiff":
		return vgimg.TiffCanvas{Canvas: f.raster()}, nil
	case "svg", "pdf", "eps":
		c, err := draw.NewFormattedCanvas(f.Style.Width, f.Style.Height, strings.ToLower(format))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (f *Figure) raster() *vgimg.Canvas {
	return vgimg.NewWith(
		vgimg.UseWH(f.Style.Width, f.Style.Height),
		vgimg.UseDPI(f.Style.DPI),
	)
}
