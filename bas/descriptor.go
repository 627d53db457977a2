// Converts the paths of an SVG document into BAS scripts:
// a list of `def path` declarations followed by `set` display directives,
// as consumed by the BAS player.
package bas

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/benoitkugler/svgbas/svgdoc"
	"github.com/benoitkugler/svgbas/svgpath"
)

// DefaultZIndex is the layer used when no override is given.
const DefaultZIndex = 1

// PathDescriptor is the BAS representation of one SVG path.
// D and ViewBox are stored unquoted; X, Y and FillColor are kept
// as text to avoid any rounding.
type PathDescriptor struct {
	ID        string
	D         string
	ViewBox   string
	X, Y      string
	FillColor string
	ZIndex    int
}

// FormatViewBox returns the viewBox value "0 0 width height".
func FormatViewBox(vb svgdoc.ViewBox) string {
	return fmt.Sprintf("0 0 %s %s", vb.Width, vb.Height)
}

// MapPath builds the descriptor for `raw`. `id` and `zIndex` are
// chosen by the caller; no uniqueness check is done.
// It is safe to call concurrently.
func MapPath(vb svgdoc.ViewBox, raw svgdoc.RawPath, id string, zIndex int) (PathDescriptor, error) {
	out := PathDescriptor{ID: id, ViewBox: FormatViewBox(vb), ZIndex: zIndex}

	d, ok := raw.Get("d")
	if !ok {
		return out, &InvalidGeometryError{Missing: true}
	}
	if strings.ContainsAny(d, "\"\n") {
		return out, &InvalidGeometryError{Value: d, Err: errors.New("quote or line break in path data")}
	}
	out.D = d

	fill, ok := raw.Get("fill")
	if !ok {
		return out, &InvalidColorError{Missing: true}
	}
	var err error
	out.FillColor, err = fillColor(fill)
	if err != nil {
		return out, err
	}

	tr, ok := raw.Get("transform")
	if !ok {
		return out, &InvalidTransformError{Missing: true}
	}
	out.X, out.Y, err = translation(tr)
	if err != nil {
		return out, err
	}
	return out, nil
}

// CheckGeometry parses the path data of `pd`.
func (pd PathDescriptor) CheckGeometry() error {
	if _, err := svgpath.Parse(pd.D); err != nil {
		return &InvalidGeometryError{Value: pd.D, Err: err}
	}
	return nil
}

// Geometry returns the parsed path data.
func (pd PathDescriptor) Geometry() (svgpath.Path, error) {
	p, err := svgpath.Parse(pd.D)
	if err != nil {
		return nil, &InvalidGeometryError{Value: pd.D, Err: err}
	}
	return p, nil
}

// WriteTo writes the `def path` declaration block.
func (pd PathDescriptor) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "def path %s {\n"+
		"    d=\"%s\"\n"+
		"    viewBox=\"%s\"\n"+
		"    x=%s\n"+
		"    y=%s\n"+
		"    fillColor=%s\n"+
		"    zIndex=%d\n"+
		"}\n", pd.ID, pd.D, pd.ViewBox, pd.X, pd.Y, pd.FillColor, pd.ZIndex)
	return int64(n), err
}

// String returns the declaration block.
func (pd PathDescriptor) String() string {
	var b strings.Builder
	_, _ = pd.WriteTo(&b)
	return b.String()
}

// Directive displays the declared path ID for DurationMs milliseconds.
type Directive struct {
	ID         string
	DurationMs int
}

// WriteTo writes the `set` line.
func (d Directive) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "set %s {} %dms\n", d.ID, d.DurationMs)
	return int64(n), err
}

// Script is a complete BAS program.
type Script struct {
	Paths      []PathDescriptor
	Directives []Directive
}

// WriteTo writes all the declarations, then all the directives.
func (s Script) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, pd := range s.Paths {
		n, err := pd.WriteTo(bw)
		total += n
		if err != nil {
			return total, err
		}
	}
	for _, d := range s.Directives {
		n, err := d.WriteTo(bw)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}
