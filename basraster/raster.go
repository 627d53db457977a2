// Implements a raster preview of BAS scripts,
// by wrapping rasterx.
package basraster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgbas/bas"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// MaxSize bounds the dimensions of a preview.
const MaxSize = 1 << 14

type Renderer struct {
	img    *image.RGBA
	filler *rasterx.Filler
}

// NewRenderer returns a renderer drawing on a transparent image of the given size.
func NewRenderer(width, height int) *Renderer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Renderer{img: img, filler: rasterx.NewFiller(width, height, scanner)}
}

// Image returns the image drawn so far.
func (rd *Renderer) Image() *image.RGBA { return rd.img }

// DrawPath fills the path, translated by its x and y.
// Paths whose extent lies outside of the image are skipped:
// `drawn` is false for them.
func (rd *Renderer) DrawPath(pd bas.PathDescriptor) (drawn bool, err error) {
	geom, err := pd.Geometry()
	if err != nil {
		return false, err
	}
	col, err := parseColor(pd.FillColor)
	if err != nil {
		return false, err
	}
	x, err := parseLength(pd.X)
	if err != nil {
		return false, fmt.Errorf("x of %s: %w", pd.ID, err)
	}
	y, err := parseLength(pd.Y)
	if err != nil {
		return false, fmt.Errorf("y of %s: %w", pd.ID, err)
	}
	offset := fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}

	if !rd.visible(geom.Bounds().Add(offset)) {
		return false, nil
	}

	rd.filler.Clear()
	rd.filler.SetWinding(true)
	rd.filler.Scanner.SetColor(col)
	geom.DrawTo(rd.filler, offset)
	rd.filler.Draw()
	return true, nil
}

// visible reports whether `extent` intersects the image
func (rd *Renderer) visible(extent fixed.Rectangle26_6) bool {
	size := rd.img.Bounds().Size()
	w, h := fixed.I(size.X), fixed.I(size.Y)
	return extent.Max.X > 0 && extent.Min.X < w && extent.Max.Y > 0 && extent.Min.Y < h
}

// Render draws the paths in z order, later paths above earlier ones
// for the same zIndex. The image size is read from the viewBox
// of the first path.
func Render(paths []bas.PathDescriptor) (*image.RGBA, error) {
	if len(paths) == 0 {
		return nil, errors.New("no path to render")
	}
	w, h, err := viewBoxSize(paths[0].ViewBox)
	if err != nil {
		return nil, err
	}
	sorted := make([]bas.PathDescriptor, len(paths))
	copy(sorted, paths)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ZIndex < sorted[j].ZIndex })

	rd := NewRenderer(w, h)
	for _, pd := range sorted {
		if _, err := rd.DrawPath(pd); err != nil {
			return nil, fmt.Errorf("can't render path %s: %w", pd.ID, err)
		}
	}
	return rd.Image(), nil
}

// WritePNG encodes the image as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// parseColor reads a 0xRRGGBB color, fully opaque
func parseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "0x")
	if hex == s || len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// parseLength reads a number, with an optional px unit
func parseLength(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
	if err != nil {
		return 0, fmt.Errorf("unsupported length %q", s)
	}
	return v, nil
}

func viewBoxSize(vb string) (w, h int, err error) {
	fields := strings.Fields(vb)
	if len(fields) != 4 {
		return 0, 0, fmt.Errorf("invalid viewBox %q", vb)
	}
	fw, err := parseLength(fields[2])
	if err != nil {
		return 0, 0, err
	}
	fh, err := parseLength(fields[3])
	if err != nil {
		return 0, 0, err
	}
	w, h = int(fw+0.5), int(fh+0.5)
	if w <= 0 || h <= 0 || w > MaxSize || h > MaxSize {
		return 0, 0, fmt.Errorf("unsupported preview size %dx%d", w, h)
	}
	return w, h, nil
}
