package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var errEmptyPath = errors.New("empty path data")

// SyntaxError reports a malformed path data string.
type SyntaxError struct {
	Offset int // byte offset in the source
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid path data at offset %d: %s", e.Offset, e.Msg)
}

// pathCursor is used while parsing path data
type pathCursor struct {
	src string
	pos int

	path             Path
	placeX, placeY   float64 // current point
	startX, startY   float64 // start of the current subpath
	cntlPtX, cntlPtY float64 // last control point, for smooth curves
	lastKey          byte    // last command, upper case
	inPath           bool
	points           []float64
}

// Parse reads SVG path data, as found in the `d` attribute,
// and returns the equivalent absolute path.
// Arcs are approximated by cubic bezier curves.
func Parse(d string) (Path, error) {
	c := &pathCursor{src: d}
	if err := c.run(); err != nil {
		return nil, err
	}
	return c.path, nil
}

func (c *pathCursor) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Offset: c.pos, Msg: fmt.Sprintf(format, args...)}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// skipSeparators skips white spaces and commas
func (c *pathCursor) skipSeparators() {
	for c.pos < len(c.src) && (isSpace(c.src[c.pos]) || c.src[c.pos] == ',') {
		c.pos++
	}
}

// hasNumber returns true if a number starts after the separators
func (c *pathCursor) hasNumber() bool {
	c.skipSeparators()
	if c.pos >= len(c.src) {
		return false
	}
	b := c.src[c.pos]
	return isDigit(b) || b == '.' || b == '-' || b == '+'
}

// readNumber reads a number following the SVG grammar:
// 1.5.5 is read as 1.5 then .5 and 1-2 as 1 then -2.
func (c *pathCursor) readNumber() (float64, error) {
	c.skipSeparators()
	start := c.pos
	i := c.pos
	if i < len(c.src) && (c.src[i] == '-' || c.src[i] == '+') {
		i++
	}
	digits := 0
	for i < len(c.src) && isDigit(c.src[i]) {
		i++
		digits++
	}
	if i < len(c.src) && c.src[i] == '.' {
		i++
		for i < len(c.src) && isDigit(c.src[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, c.errorf("expected number")
	}
	if i < len(c.src) && (c.src[i] == 'e' || c.src[i] == 'E') {
		j := i + 1
		if j < len(c.src) && (c.src[j] == '-' || c.src[j] == '+') {
			j++
		}
		if j < len(c.src) && isDigit(c.src[j]) {
			for j < len(c.src) && isDigit(c.src[j]) {
				j++
			}
			i = j
		}
	}
	f, err := strconv.ParseFloat(c.src[start:i], 64)
	if err != nil {
		return 0, c.errorf("invalid number %q", c.src[start:i])
	}
	c.pos = i
	return f, nil
}

// readFlag reads an arc flag, which may be written without separator
func (c *pathCursor) readFlag() (float64, error) {
	c.skipSeparators()
	if c.pos < len(c.src) {
		switch c.src[c.pos] {
		case '0':
			c.pos++
			return 0, nil
		case '1':
			c.pos++
			return 1, nil
		}
	}
	return 0, c.errorf("expected arc flag")
}

// getPoints reads `n` arguments into c.points.
// Arc arguments are read with flags at positions 3 and 4.
func (c *pathCursor) getPoints(n int, arc bool) error {
	c.points = c.points[:0]
	for i := 0; i < n; i++ {
		var (
			f   float64
			err error
		)
		if arc && (i == 3 || i == 4) {
			f, err = c.readFlag()
		} else {
			f, err = c.readNumber()
		}
		if err != nil {
			return err
		}
		c.points = append(c.points, f)
	}
	return nil
}

var commandArgs = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

func toUpper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func (c *pathCursor) run() error {
	c.skipSeparators()
	if c.pos >= len(c.src) {
		return errEmptyPath
	}
	first := true
	for {
		c.skipSeparators()
		if c.pos >= len(c.src) {
			break
		}
		cmd := c.src[c.pos]
		key := toUpper(cmd)
		nArgs, ok := commandArgs[key]
		if !ok {
			return c.errorf("unknown command %q", cmd)
		}
		if first && key != 'M' {
			return c.errorf("path data must start with a moveto, got %q", cmd)
		}
		first = false
		c.pos++
		rel := cmd != key

		if key == 'Z' {
			c.closePath()
			continue
		}
		// a command may be repeated with implicit arguments
		for repeat := 0; repeat == 0 || c.hasNumber(); repeat++ {
			if err := c.getPoints(nArgs, key == 'A'); err != nil {
				return err
			}
			k := key
			if key == 'M' && repeat > 0 {
				k = 'L' // subsequent pairs are implicit lineto
			}
			c.addSeg(k, rel)
		}
	}
	if c.inPath {
		c.path.Stop(false)
		c.inPath = false
	}
	return nil
}

func (c *pathCursor) closePath() {
	if c.inPath {
		c.path.Stop(true)
		c.inPath = false
	}
	c.placeX, c.placeY = c.startX, c.startY
	c.lastKey = 'Z'
}

// ensureStarted opens a subpath at the current point when a drawing
// command follows a closepath
func (c *pathCursor) ensureStarted() {
	if !c.inPath {
		c.path.Start(fToFixed(c.placeX, c.placeY))
		c.startX, c.startY = c.placeX, c.placeY
		c.inPath = true
	}
}

// reflect returns the reflection of the last control point if the
// previous command was one of `keys`, and the current point otherwise
func (c *pathCursor) reflect(keys ...byte) (float64, float64) {
	for _, k := range keys {
		if c.lastKey == k {
			return 2*c.placeX - c.cntlPtX, 2*c.placeY - c.cntlPtY
		}
	}
	return c.placeX, c.placeY
}

// addSeg adds the segment described by c.points, for the upper case command `key`
func (c *pathCursor) addSeg(key byte, rel bool) {
	p := c.points
	if rel {
		// every argument pair is an offset from the current point,
		// except arc radii, rotation and flags
		switch key {
		case 'H':
			p[0] += c.placeX
		case 'V':
			p[0] += c.placeY
		case 'A':
			p[5] += c.placeX
			p[6] += c.placeY
		default:
			for i := 0; i+1 < len(p); i += 2 {
				p[i] += c.placeX
				p[i+1] += c.placeY
			}
		}
	}
	switch key {
	case 'M':
		if c.inPath {
			c.path.Stop(false)
		}
		c.path.Start(fToFixed(p[0], p[1]))
		c.placeX, c.placeY = p[0], p[1]
		c.startX, c.startY = p[0], p[1]
		c.inPath = true
	case 'L':
		c.ensureStarted()
		c.lineTo(p[0], p[1])
	case 'H':
		c.ensureStarted()
		c.lineTo(p[0], c.placeY)
	case 'V':
		c.ensureStarted()
		c.lineTo(c.placeX, p[0])
	case 'C':
		c.ensureStarted()
		c.cubicTo(p[0], p[1], p[2], p[3], p[4], p[5])
	case 'S':
		c.ensureStarted()
		x1, y1 := c.reflect('C', 'S')
		c.cubicTo(x1, y1, p[0], p[1], p[2], p[3])
	case 'Q':
		c.ensureStarted()
		c.quadTo(p[0], p[1], p[2], p[3])
	case 'T':
		c.ensureStarted()
		x1, y1 := c.reflect('Q', 'T')
		c.quadTo(x1, y1, p[0], p[1])
	case 'A':
		c.ensureStarted()
		c.arcTo(p)
	}
	c.lastKey = key
}

func (c *pathCursor) lineTo(x, y float64) {
	c.path.Line(fToFixed(x, y))
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) quadTo(x1, y1, x, y float64) {
	c.path.QuadBezier(fToFixed(x1, y1), fToFixed(x, y))
	c.cntlPtX, c.cntlPtY = x1, y1
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) cubicTo(x1, y1, x2, y2, x, y float64) {
	c.path.CubeBezier(fToFixed(x1, y1), fToFixed(x2, y2), fToFixed(x, y))
	c.cntlPtX, c.cntlPtY = x2, y2
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) arcTo(p []float64) {
	if p[5] == c.placeX && p[6] == c.placeY {
		return // zero length arcs are omitted
	}
	p[0], p[1] = math.Abs(p[0]), math.Abs(p[1])
	if p[0] == 0 || p[1] == 0 { // degenerated into a line
		c.lineTo(p[5], p[6])
		return
	}
	arc := newEllipticArc(c.placeX, c.placeY, p[0], p[1], p[2], p[3] != 0, p[4] != 0, p[5], p[6])
	arc.appendTo(&c.path, p[5], p[6])
	c.placeX, c.placeY = p[5], p[6]
}
