package bas

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SyntaxError is returned by ParseScript for text which is not
// a script written by an Emitter.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bas script, line %d: %s", e.Line, e.Msg)
}

// maximum line length accepted by ParseScript: path data may be very long
const maxLineSize = 64 << 20

type scriptReader struct {
	scanner *bufio.Scanner
	line    int
}

func (sr *scriptReader) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Line: sr.line, Msg: fmt.Sprintf(format, args...)}
}

// next returns the next non blank line, trimmed
func (sr *scriptReader) next() (string, bool) {
	for sr.scanner.Scan() {
		sr.line++
		if l := strings.TrimSpace(sr.scanner.Text()); l != "" {
			return l, true
		}
	}
	return "", false
}

func unquote(v string) (string, bool) {
	if len(v) < 2 || v[0] != '"' || v[len(v)-1] != '"' {
		return "", false
	}
	return v[1 : len(v)-1], true
}

func (sr *scriptReader) readBlock(id string) (PathDescriptor, error) {
	pd := PathDescriptor{ID: id}
	seen := map[string]bool{}
	for {
		l, ok := sr.next()
		if !ok {
			return pd, sr.errorf("unterminated declaration of %s", id)
		}
		if l == "}" {
			break
		}
		key, value, ok := strings.Cut(l, "=")
		if !ok {
			return pd, sr.errorf("expected key=value, got %q", l)
		}
		if seen[key] {
			return pd, sr.errorf("duplicate key %s", key)
		}
		seen[key] = true
		switch key {
		case "d", "viewBox":
			v, ok := unquote(value)
			if !ok {
				return pd, sr.errorf("%s must be quoted", key)
			}
			if key == "d" {
				pd.D = v
			} else {
				pd.ViewBox = v
			}
		case "x":
			pd.X = value
		case "y":
			pd.Y = value
		case "fillColor":
			pd.FillColor = value
		case "zIndex":
			z, err := strconv.Atoi(value)
			if err != nil {
				return pd, sr.errorf("invalid zIndex %q", value)
			}
			pd.ZIndex = z
		default:
			return pd, sr.errorf("unknown key %s", key)
		}
	}
	for _, key := range [...]string{"d", "viewBox", "x", "y", "fillColor", "zIndex"} {
		if !seen[key] {
			return pd, sr.errorf("declaration of %s has no %s", id, key)
		}
	}
	return pd, nil
}

func (sr *scriptReader) readDirective(l string) (Directive, error) {
	fields := strings.Fields(l)
	if len(fields) != 4 || fields[2] != "{}" || !strings.HasSuffix(fields[3], "ms") {
		return Directive{}, sr.errorf("invalid directive %q", l)
	}
	ms, err := strconv.Atoi(strings.TrimSuffix(fields[3], "ms"))
	if err != nil {
		return Directive{}, sr.errorf("invalid duration %q", fields[3])
	}
	return Directive{ID: fields[1], DurationMs: ms}, nil
}

// ParseScript reads back a script: declarations first, then directives.
// Directives must refer to declared paths.
func ParseScript(r io.Reader) (Script, error) {
	sr := &scriptReader{scanner: bufio.NewScanner(r)}
	sr.scanner.Buffer(nil, maxLineSize)

	var out Script
	declared := map[string]bool{}
	for {
		l, ok := sr.next()
		if !ok {
			break
		}
		switch {
		case strings.HasPrefix(l, "def "):
			if len(out.Directives) != 0 {
				return out, sr.errorf("declaration after directives")
			}
			fields := strings.Fields(l)
			if len(fields) != 4 || fields[1] != "path" || fields[3] != "{" {
				return out, sr.errorf("invalid declaration %q", l)
			}
			if declared[fields[2]] {
				return out, sr.errorf("path %s declared twice", fields[2])
			}
			pd, err := sr.readBlock(fields[2])
			if err != nil {
				return out, err
			}
			declared[pd.ID] = true
			out.Paths = append(out.Paths, pd)
		case strings.HasPrefix(l, "set "):
			d, err := sr.readDirective(l)
			if err != nil {
				return out, err
			}
			if !declared[d.ID] {
				return out, sr.errorf("directive for undeclared path %s", d.ID)
			}
			out.Directives = append(out.Directives, d)
		default:
			return out, sr.errorf("unexpected line %q", l)
		}
	}
	if err := sr.scanner.Err(); err != nil {
		return out, err
	}
	return out, nil
}
