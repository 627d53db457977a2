// Implements an abstract representation of
// svg path data, used to check the geometry of
// a path and to draw it.
package svgpath

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Operation groups the different path commands.
// All points are absolute.
type Operation interface {
	// extent returns the points bounding the operation, starting
	// at the current point `from`
	extent(from fixed.Point26_6) bezier
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

// Path describes a sequence of basic SVG operations.
type Path []Operation

// Drawer accumulates path commands, typically a rasterizer.
type Drawer interface {
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	QuadBezier(b, c fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
	Stop(closeLoop bool)
}

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64, float32(op[2].X)/64, float32(op[2].Y)/64)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// DrawTo sends the path to `d`, translated by `offset`.
// Subpaths are implicitly ended before each MoveTo.
func (p Path) DrawTo(d Drawer, offset fixed.Point26_6) {
	started := false
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			if started {
				d.Stop(false)
			}
			d.Start(fixed.Point26_6(op).Add(offset))
			started = true
		case LineTo:
			d.Line(fixed.Point26_6(op).Add(offset))
		case QuadTo:
			d.QuadBezier(op[0].Add(offset), op[1].Add(offset))
		case CubicTo:
			d.CubeBezier(op[0].Add(offset), op[1].Add(offset), op[2].Add(offset))
		case Close:
			d.Stop(true)
			started = false
		}
	}
	if started {
		d.Stop(false)
	}
}
