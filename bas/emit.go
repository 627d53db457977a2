package bas

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/benoitkugler/svgbas/svgdoc"
	"github.com/flanksource/commons/logger"
	"golang.org/x/sync/errgroup"
)

// DefaultDurationMs is the display duration of every path, in milliseconds.
const DefaultDurationMs = 1000

// Emitter converts documents into BAS scripts.
// The zero value is ready to use.
type Emitter struct {
	// DurationMs is applied to every directive. Zero means DefaultDurationMs,
	// negative values are rejected.
	DurationMs int

	// Workers is the number of goroutines mapping paths.
	// Values below 2 map sequentially. The output order
	// does not depend on it.
	Workers int

	// CheckGeometry enables the parsing of the path data.
	CheckGeometry bool

	// ZIndex returns the layer of the path at `index`.
	// If nil, every path uses DefaultZIndex.
	ZIndex func(index int) int
}

// StackZIndex puts each path above the previous ones.
func StackZIndex(index int) int { return index + 1 }

// PathID returns the identifier of the path at `index`.
func PathID(index int) string { return fmt.Sprintf("p%d", index) }

func (e Emitter) duration() int {
	if e.DurationMs == 0 {
		return DefaultDurationMs
	}
	return e.DurationMs
}

func (e Emitter) zIndex(index int) int {
	if e.ZIndex == nil {
		return DefaultZIndex
	}
	return e.ZIndex(index)
}

func (e Emitter) mapOne(vb svgdoc.ViewBox, raw svgdoc.RawPath, index int) (PathDescriptor, error) {
	pd, err := MapPath(vb, raw, PathID(index), e.zIndex(index))
	if err == nil && e.CheckGeometry {
		err = pd.CheckGeometry()
	}
	return pd, err
}

// Map returns the descriptors of all the paths of `doc`, in document order.
// If several paths are invalid, the error refers to the first one.
func (e Emitter) Map(doc *svgdoc.Document) ([]PathDescriptor, error) {
	out := make([]PathDescriptor, len(doc.Paths))
	errs := make([]error, len(doc.Paths))

	if e.Workers < 2 {
		for i, raw := range doc.Paths {
			out[i], errs[i] = e.mapOne(doc.ViewBox, raw, i)
			if errs[i] != nil {
				break
			}
		}
	} else {
		var g errgroup.Group
		g.SetLimit(e.Workers)
		for i, raw := range doc.Paths {
			i, raw := i, raw
			g.Go(func() error {
				out[i], errs[i] = e.mapOne(doc.ViewBox, raw, i)
				return errs[i]
			})
		}
		_ = g.Wait() // errs is inspected in order below
	}

	for i, err := range errs {
		if err != nil {
			return nil, &EmissionError{Stage: StageMap, Index: i, Err: err}
		}
	}
	logger.Debugf("mapped %d paths (viewBox %q)", len(out), FormatViewBox(doc.ViewBox))
	return out, nil
}

// Build returns the script for `doc`: one declaration
// and one directive per path, in document order.
func (e Emitter) Build(doc *svgdoc.Document) (Script, error) {
	if e.DurationMs < 0 {
		return Script{}, fmt.Errorf("%w: %dms", ErrInvalidDuration, e.DurationMs)
	}
	paths, err := e.Map(doc)
	if err != nil {
		return Script{}, err
	}
	directives := make([]Directive, len(paths))
	for i, pd := range paths {
		directives[i] = Directive{ID: pd.ID, DurationMs: e.duration()}
	}
	return Script{Paths: paths, Directives: directives}, nil
}

// Emit writes the script for `doc` to `w`.
// Nothing is written if a path can't be mapped.
func (e Emitter) Emit(w io.Writer, doc *svgdoc.Document) error {
	script, err := e.Build(doc)
	if err != nil {
		return err
	}
	if _, err = script.WriteTo(w); err != nil {
		return &EmissionError{Stage: StageWrite, Index: -1, Err: err}
	}
	return nil
}

// Bytes returns the script for `doc`.
func (e Emitter) Bytes(doc *svgdoc.Document) ([]byte, error) {
	var b bytes.Buffer
	if err := e.Emit(&b, doc); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// WriteFile writes the script for `doc` to the file `path`.
// Nothing is written if a path can't be mapped.
func (e Emitter) WriteFile(path string, doc *svgdoc.Document) error {
	script, err := e.Build(doc)
	if err != nil {
		return err
	}
	return WriteScript(path, script)
}

// WriteScript writes `script` to the file `path`.
// The content is first written to a temporary file in the same directory,
// which is renamed on success and removed on failure, so that `path`
// is never left with a partial script.
// Concurrent calls targeting the same file race: the last rename wins.
func WriteScript(path string, script Script) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &EmissionError{Stage: StageWrite, Index: -1, Err: err}
	}
	tmp := f.Name()
	fail := func(err error) error {
		f.Close()
		os.Remove(tmp)
		return &EmissionError{Stage: StageWrite, Index: -1, Err: err}
	}

	if _, err = script.WriteTo(f); err != nil {
		return fail(err)
	}
	if err = f.Chmod(0o644); err != nil {
		return fail(err)
	}
	if err = f.Close(); err != nil {
		os.Remove(tmp)
		return &EmissionError{Stage: StageWrite, Index: -1, Err: err}
	}
	if err = os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &EmissionError{Stage: StageWrite, Index: -1, Err: err}
	}
	logger.Debugf("wrote %d paths to %s", len(script.Paths), path)
	return nil
}
