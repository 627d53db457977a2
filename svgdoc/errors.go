package svgdoc

import "fmt"

// LoadError is returned when the source can't be read
// or is not well-formed XML.
type LoadError struct {
	Path string // empty when reading from a stream
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("can't load svg document: %s", e.Err)
	}
	return fmt.Sprintf("can't load svg document %s: %s", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// MissingElementError is returned when the document has no root svg
// element, or when that element lacks a required attribute.
type MissingElementError struct {
	Element   string
	Attribute string // empty if the element itself is missing
}

func (e *MissingElementError) Error() string {
	if e.Attribute == "" {
		return fmt.Sprintf("missing <%s> element", e.Element)
	}
	return fmt.Sprintf("<%s> element has no %s attribute", e.Element, e.Attribute)
}
