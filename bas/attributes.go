package bas

import (
	"strconv"
	"strings"
)

// fillColor converts a #RRGGBB color to 0xRRGGBB, preserving the case.
// The #RGB shorthand is expanded by duplicating the digits, so that #abc
// gives 0xaabbcc rather than the 0xabc a plain prefix swap would produce:
// fillColor always has 6 hex digits.
func fillColor(v string) (string, error) {
	hex := strings.TrimPrefix(v, "#")
	if hex == v {
		return "", &InvalidColorError{Value: v}
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return "", &InvalidColorError{Value: v}
	}
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return "", &InvalidColorError{Value: v}
		}
	}
	return "0x" + hex, nil
}

func isHexDigit(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
}

// translation splits translate(x,y) into its components,
// kept as written in the source.
func translation(v string) (x, y string, err error) {
	t := strings.TrimSpace(v)
	d := strings.Split(t, "(")
	if len(d) != 2 || strings.TrimSpace(d[0]) != "translate" || !strings.HasSuffix(d[1], ")") {
		return "", "", &InvalidTransformError{Value: v} // badly formed transformation
	}
	args := splitOnCommaOrSpace(strings.TrimSuffix(d[1], ")"))
	if len(args) != 2 {
		return "", "", &InvalidTransformError{Value: v}
	}
	for _, a := range args {
		if !isNumber(a) {
			return "", "", &InvalidTransformError{Value: v}
		}
	}
	return args[0], args[1], nil
}

// isNumber accepts decimal numbers with an optional exponent,
// rejecting Inf, NaN and hexadecimal forms
func isNumber(s string) bool {
	for _, r := range s {
		if !(('0' <= r && r <= '9') || strings.ContainsRune("+-.eE", r)) {
			return false
		}
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
