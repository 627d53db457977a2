// Reads the parts of an SVG document needed to build a BAS script:
// the root width and height, and the attributes of every path element,
// in document order.
package svgdoc

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// Namespace is the SVG namespace; elements outside of it are ignored.
const Namespace = "http://www.w3.org/2000/svg"

// ViewBox holds the top level width and height attributes,
// copied verbatim (they may carry units).
type ViewBox struct {
	Width, Height string
}

// RawPath is the attribute set of one path element.
// Index is the position of the element among all the paths of the document.
type RawPath struct {
	Index int
	Attrs []xml.Attr
}

// Get returns the value of the attribute `name` (not namespaced).
func (p RawPath) Get(name string) (string, bool) {
	for _, attr := range p.Attrs {
		if attr.Name.Space == "" && attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Map returns the attributes keyed by local name.
// Later duplicates overwrite earlier ones.
func (p RawPath) Map() map[string]string {
	out := make(map[string]string, len(p.Attrs))
	for _, attr := range p.Attrs {
		out[attr.Name.Local] = attr.Value
	}
	return out
}

// Document is the result of reading an SVG file.
type Document struct {
	ViewBox ViewBox
	Paths   []RawPath
}

// loader accumulates the elements while decoding
type loader struct {
	doc     Document
	seenSVG bool
}

func (l *loader) startElement(se xml.StartElement) error {
	if se.Name.Space != Namespace {
		return nil
	}
	switch se.Name.Local {
	case "svg":
		if l.seenSVG { // nested svg elements do not change the viewbox
			return nil
		}
		l.seenSVG = true
		return l.readViewBox(se.Attr)
	case "path":
		attrs := make([]xml.Attr, len(se.Attr))
		for i, attr := range se.Attr {
			attrs[i] = xml.Attr{Name: attr.Name, Value: normalizeAttr(attr.Value)}
		}
		l.doc.Paths = append(l.doc.Paths, RawPath{Index: len(l.doc.Paths), Attrs: attrs})
	}
	return nil
}

// normalizeAttr replaces tabs and line breaks by spaces,
// as XML parsers do for attribute values. encoding/xml does not.
func normalizeAttr(v string) string {
	if !strings.ContainsAny(v, "\t\n\r") {
		return v
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, v)
}

func (l *loader) readViewBox(attrs []xml.Attr) error {
	var hasWidth, hasHeight bool
	for _, attr := range attrs {
		if attr.Name.Space != "" {
			continue
		}
		switch attr.Name.Local {
		case "width":
			l.doc.ViewBox.Width, hasWidth = attr.Value, true
		case "height":
			l.doc.ViewBox.Height, hasHeight = attr.Value, true
		}
	}
	if !hasWidth {
		return &MissingElementError{Element: "svg", Attribute: "width"}
	}
	if !hasHeight {
		return &MissingElementError{Element: "svg", Attribute: "height"}
	}
	return nil
}

// ReadDocumentStream reads the document from the given io.Reader.
// The whole stream is decoded, so that a malformed document is
// reported even after the last path element.
func ReadDocumentStream(stream io.Reader) (*Document, error) {
	var l loader
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, &LoadError{Err: errors.New("no xml element found")}
				}
				break
			}
			return nil, &LoadError{Err: err}
		}
		if se, ok := t.(xml.StartElement); ok {
			seenTag = true
			if err = l.startElement(se); err != nil {
				return nil, err
			}
		}
	}
	if !l.seenSVG {
		return nil, &MissingElementError{Element: "svg"}
	}
	return &l.doc, nil
}

// ReadDocument reads the document from the named file.
func ReadDocument(file string) (*Document, error) {
	fin, err := os.Open(file)
	if err != nil {
		return nil, &LoadError{Path: file, Err: err}
	}
	defer fin.Close()
	doc, err := ReadDocumentStream(fin)
	var le *LoadError
	if errors.As(err, &le) {
		le.Path = file
	}
	return doc, err
}
