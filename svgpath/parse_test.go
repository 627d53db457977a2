package svgpath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

func pt(x, y float64) fixed.Point26_6 { return fToFixed(x, y) }

func TestParseBasic(t *testing.T) {
	p, err := Parse("M0 0 L640 0 L640 640 Z")
	require.NoError(t, err)
	assert.Equal(t, Path{
		MoveTo(pt(0, 0)),
		LineTo(pt(640, 0)),
		LineTo(pt(640, 640)),
		Close{},
	}, p)
}

func TestParseRelativeAndImplicit(t *testing.T) {
	p, err := Parse("m10,10 5,0 0,5 h-5 v-5 z l1 1")
	require.NoError(t, err)
	assert.Equal(t, Path{
		MoveTo(pt(10, 10)),
		LineTo(pt(15, 10)),
		LineTo(pt(15, 15)),
		LineTo(pt(10, 15)),
		LineTo(pt(10, 10)),
		Close{},
		// a drawing command after closepath starts at the subpath start
		MoveTo(pt(10, 10)),
		LineTo(pt(11, 11)),
	}, p)
}

func TestParseCompactNumbers(t *testing.T) {
	p, err := Parse("M.5.5L-1-2e1 1E-1,3")
	require.NoError(t, err)
	assert.Equal(t, Path{
		MoveTo(pt(0.5, 0.5)),
		LineTo(pt(-1, -20)),
		LineTo(pt(0.1, 3)),
	}, p)
}

func TestParseCurves(t *testing.T) {
	p, err := Parse("M0 0 C10 0 20 10 20 20 S30 40 40 40 Q50 40 50 50 T50 70")
	require.NoError(t, err)
	require.Len(t, p, 5)
	assert.Equal(t, CubicTo{pt(10, 0), pt(20, 10), pt(20, 20)}, p[1])
	// reflection of (20,10) around (20,20)
	assert.Equal(t, CubicTo{pt(20, 30), pt(30, 40), pt(40, 40)}, p[2])
	assert.Equal(t, QuadTo{pt(50, 40), pt(50, 50)}, p[3])
	// reflection of (50,40) around (50,50)
	assert.Equal(t, QuadTo{pt(50, 60), pt(50, 70)}, p[4])
}

func TestParseSmoothWithoutPrevious(t *testing.T) {
	p, err := Parse("M0 0 L10 0 S20 10 30 0")
	require.NoError(t, err)
	// the first control point is the current point
	assert.Equal(t, CubicTo{pt(10, 0), pt(20, 10), pt(30, 0)}, p[2])
}

func TestParseArc(t *testing.T) {
	p, err := Parse("M0 0 A10 10 0 0 1 20 0")
	require.NoError(t, err)
	require.True(t, len(p) >= 2)
	for _, op := range p[1:] {
		assert.IsType(t, CubicTo{}, op)
	}
	last := p[len(p)-1].(CubicTo)
	assert.Equal(t, pt(20, 0), last[2])

	// half circle of radius 10 below or above the chord
	b := p.Bounds()
	assert.InDelta(t, 0, float64(b.Min.X)/64, 0.05)
	assert.InDelta(t, 20, float64(b.Max.X)/64, 0.05)
	assert.InDelta(t, 10, float64(b.Max.Y-b.Min.Y)/64, 0.1)
}

func TestParseArcFlags(t *testing.T) {
	// quarter circle centered on the origin
	small, err := Parse("M10 0 A10 10 0 0 1 0 10")
	require.NoError(t, err)
	b := small.Bounds()
	assert.InDelta(t, 0, float64(b.Min.X)/64, 0.05)
	assert.InDelta(t, 0, float64(b.Min.Y)/64, 0.05)
	assert.InDelta(t, 10, float64(b.Max.X)/64, 0.05)
	assert.InDelta(t, 10, float64(b.Max.Y)/64, 0.05)

	// three quarters centered on (10, 10)
	large, err := Parse("M10 0 A10 10 0 1 1 0 10")
	require.NoError(t, err)
	b = large.Bounds()
	assert.InDelta(t, 0, float64(b.Min.X)/64, 0.05)
	assert.InDelta(t, 0, float64(b.Min.Y)/64, 0.05)
	assert.InDelta(t, 20, float64(b.Max.X)/64, 0.05)
	assert.InDelta(t, 20, float64(b.Max.Y)/64, 0.05)
	assert.Greater(t, len(large), len(small))

	// radii too small are scaled up; rotation keeps the end point exact
	p, err := Parse("M0 0 A1 2 30 0 0 40 10")
	require.NoError(t, err)
	assert.Equal(t, pt(40, 10), p[len(p)-1].(CubicTo)[2])
}

func TestParseArcCompactFlags(t *testing.T) {
	p1, err := Parse("M0 0 a10 10 0 0 1 20 0")
	require.NoError(t, err)
	p2, err := Parse("M0 0 a10 10 0 0120 0")
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}

func TestParseArcDegenerated(t *testing.T) {
	p, err := Parse("M0 0 A0 5 0 0 1 20 0")
	require.NoError(t, err)
	assert.Equal(t, Path{MoveTo(pt(0, 0)), LineTo(pt(20, 0))}, p)
}

func TestParseErrors(t *testing.T) {
	for _, d := range []string{
		"",
		"   ",
		"L0 0",
		"M0",
		"M0 0 X1 1",
		"M0 0 L1 .",
		"M0 0 A1 1 0 2 0 1 1",
	} {
		_, err := Parse(d)
		assert.Error(t, err, d)
	}

	_, err := Parse("M0 0 L1 x")
	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 8, se.Offset)
}

func TestBounds(t *testing.T) {
	p, err := Parse("M 648.5 91 L 665.5 91 L 696.5 97 Z")
	require.NoError(t, err)
	assert.Equal(t, fixed.Rectangle26_6{Min: pt(648.5, 91), Max: pt(696.5, 97)}, p.Bounds())

	// the extremum of the quadratic curve is at y = 5
	p, err = Parse("M0 0 Q10 10 20 0")
	require.NoError(t, err)
	assert.Equal(t, fixed.Rectangle26_6{Min: pt(0, 0), Max: pt(20, 5)}, p.Bounds())

	assert.Equal(t, fixed.Rectangle26_6{}, Path(nil).Bounds())
}

type recorder struct{ ops []string }

func (r *recorder) Start(a fixed.Point26_6) { r.ops = append(r.ops, "start") }
func (r *recorder) Line(b fixed.Point26_6) { r.ops = append(r.ops, "line") }
func (r *recorder) QuadBezier(b, c fixed.Point26_6) { r.ops = append(r.ops, "quad") }
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6) { r.ops = append(r.ops, "cubic") }
func (r *recorder) Stop(closeLoop bool) {
	if closeLoop {
		r.ops = append(r.ops, "close")
	} else {
		r.ops = append(r.ops, "stop")
	}
}

func TestDrawTo(t *testing.T) {
	p, err := Parse("M0 0 L1 1 M2 2 Q3 3 4 4 Z")
	require.NoError(t, err)
	var r recorder
	p.DrawTo(&r, pt(1, 1))
	assert.Equal(t, []string{"start", "line", "stop", "start", "quad", "close"}, r.ops)
}
