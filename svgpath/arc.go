package svgpath

import "math"

// maxArcSpan is the maximum parametric angle, in radians,
// covered by one cubic of an arc approximation.
const maxArcSpan = math.Pi / 8

// ellipticArc is an arc in center parameterization:
// the points c + R(phi) * (rx cos t, ry sin t), for t from start to start+span.
type ellipticArc struct {
	cx, cy         float64
	rx, ry         float64
	sinPhi, cosPhi float64
	start, span    float64
}

// newEllipticArc converts the endpoint form of an SVG arc command.
// Radii too small to join the end points are scaled up, keeping their ratio.
// rx and ry must be positive.
func newEllipticArc(x1, y1, rx, ry, rotationDeg float64, largeArc, sweep bool, x2, y2 float64) ellipticArc {
	a := ellipticArc{rx: rx, ry: ry}
	a.sinPhi, a.cosPhi = math.Sincos(rotationDeg * math.Pi / 180)

	// half chord, in the frame of the ellipse axes
	hx, hy := (x1-x2)/2, (y1-y2)/2
	px := a.cosPhi*hx + a.sinPhi*hy
	py := -a.sinPhi*hx + a.cosPhi*hy

	if l := px*px/(a.rx*a.rx) + py*py/(a.ry*a.ry); l > 1 {
		s := math.Sqrt(l)
		a.rx, a.ry = a.rx*s, a.ry*s
	}

	rx2, ry2 := a.rx*a.rx, a.ry*a.ry
	var k float64
	if num, den := rx2*ry2-rx2*py*py-ry2*px*px, rx2*py*py+ry2*px*px; num > 0 && den > 0 {
		k = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		k = -k
	}
	ccx, ccy := k*a.rx*py/a.ry, -k*a.ry*px/a.rx

	a.cx = a.cosPhi*ccx - a.sinPhi*ccy + (x1+x2)/2
	a.cy = a.sinPhi*ccx + a.cosPhi*ccy + (y1+y2)/2

	a.start = math.Atan2((py-ccy)/a.ry, (px-ccx)/a.rx)
	end := math.Atan2((-py-ccy)/a.ry, (-px-ccx)/a.rx)
	a.span = end - a.start
	if sweep && a.span < 0 {
		a.span += 2 * math.Pi
	} else if !sweep && a.span > 0 {
		a.span -= 2 * math.Pi
	}
	return a
}

func (a ellipticArc) pointAt(t float64) (x, y float64) {
	sin, cos := math.Sincos(t)
	x = a.cx + a.rx*cos*a.cosPhi - a.ry*sin*a.sinPhi
	y = a.cy + a.rx*cos*a.sinPhi + a.ry*sin*a.cosPhi
	return x, y
}

func (a ellipticArc) tangentAt(t float64) (dx, dy float64) {
	sin, cos := math.Sincos(t)
	dx = -a.rx*sin*a.cosPhi - a.ry*cos*a.sinPhi
	dy = -a.rx*sin*a.sinPhi + a.ry*cos*a.cosPhi
	return dx, dy
}

// appendTo adds the cubic approximation of the arc to `p`, ending
// exactly at (endX, endY). See L. Maisonobe, "Drawing an elliptical arc
// using polylines, quadratic or cubic Bezier curves", 2003.
func (a ellipticArc) appendTo(p *Path, endX, endY float64) {
	n := int(math.Ceil(math.Abs(a.span) / maxArcSpan))
	if n < 1 {
		n = 1
	}
	step := a.span / float64(n)
	tan := math.Tan(step / 2)
	alpha := math.Sin(step) * (math.Sqrt(4+3*tan*tan) - 1) / 3

	t := a.start
	x0, y0 := a.pointAt(t)
	dx0, dy0 := a.tangentAt(t)
	for i := 1; i <= n; i++ {
		t = a.start + step*float64(i)
		x1, y1 := endX, endY
		if i < n {
			x1, y1 = a.pointAt(t)
		}
		dx1, dy1 := a.tangentAt(t)
		p.CubeBezier(fToFixed(x0+alpha*dx0, y0+alpha*dy0),
			fToFixed(x1-alpha*dx1, y1-alpha*dy1), fToFixed(x1, y1))
		x0, y0, dx0, dy0 = x1, y1, dx1, dy1
	}
}
