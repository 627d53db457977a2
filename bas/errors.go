package bas

import (
	"errors"
	"fmt"
)

// ErrInvalidDuration is returned by an Emitter with a negative DurationMs.
var ErrInvalidDuration = errors.New("invalid display duration")

// InvalidColorError is returned when the fill attribute
// is missing or is not an hex color like #RRGGBB.
type InvalidColorError struct {
	Value   string
	Missing bool
}

func (e *InvalidColorError) Error() string {
	if e.Missing {
		return "missing fill attribute"
	}
	return fmt.Sprintf("invalid fill color %q: expected #RRGGBB", e.Value)
}

// InvalidTransformError is returned when the transform attribute
// is missing or is not of the form translate(x,y).
type InvalidTransformError struct {
	Value   string
	Missing bool
}

func (e *InvalidTransformError) Error() string {
	if e.Missing {
		return "missing transform attribute"
	}
	return fmt.Sprintf("invalid transform %q: expected translate(x,y)", e.Value)
}

// InvalidGeometryError is returned when the d attribute is missing,
// can't be quoted, or when the geometry check is enabled and
// the path data does not parse.
type InvalidGeometryError struct {
	Value   string
	Missing bool
	Err     error
}

func (e *InvalidGeometryError) Error() string {
	if e.Missing {
		return "missing d attribute"
	}
	return fmt.Sprintf("invalid path data: %s", e.Err)
}

func (e *InvalidGeometryError) Unwrap() error { return e.Err }

// Stage identifies which step of the emission failed.
type Stage string

const (
	StageMap   Stage = "map"
	StageWrite Stage = "write"
)

// EmissionError wraps any error occurring while building a script.
// Index is the index of the offending path, or -1 when the failure
// is not related to a particular path.
type EmissionError struct {
	Stage Stage
	Index int
	Err   error
}

func (e *EmissionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("bas emission failed (%s): %s", e.Stage, e.Err)
	}
	return fmt.Sprintf("bas emission failed (%s) at path %d: %s", e.Stage, e.Index, e.Err)
}

func (e *EmissionError) Unwrap() error { return e.Err }
