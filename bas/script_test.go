package bas

import (
	"errors"
	"strings"
	"testing"

	"github.com/benoitkugler/svgbas/svgdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	script, err := ParseScript(strings.NewReader(squareBAS))
	require.NoError(t, err)
	assert.Equal(t, Script{
		Paths: []PathDescriptor{{
			ID:        "p0",
			D:         "M0 0 L640 0 L640 640 Z",
			ViewBox:   "0 0 640 640",
			X:         "0",
			Y:         "0",
			FillColor: "0xFECB02",
			ZIndex:    1,
		}},
		Directives: []Directive{{ID: "p0", DurationMs: 1000}},
	}, script)
}

func TestParseScriptIndented(t *testing.T) {
	// hand written scripts may indent blocks and separate them with blank lines
	src := `
        def path p1 {
            d="M0 0 C211.2 0 422.4 0 640 0 Z "
            viewBox="0 0 640 1280"
            x=0
            y=0
            fillColor=0xFECB02
            zIndex=1
        }

set p1 {} 1000ms
`
	script, err := ParseScript(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, script.Paths, 1)
	assert.Equal(t, "M0 0 C211.2 0 422.4 0 640 0 Z ", script.Paths[0].D)
}

func TestViewBoxRoundTrip(t *testing.T) {
	for _, vb := range []svgdoc.ViewBox{
		{Width: "640", Height: "1280"},
		{Width: "12.75", Height: "3e2"},
		{Width: "100%", Height: "20mm"},
	} {
		doc := &svgdoc.Document{ViewBox: vb, Paths: []svgdoc.RawPath{
			rawPath("d", "M0 0", "fill", "#123456", "transform", "translate(1,2)"),
		}}
		out, err := Emitter{}.Bytes(doc)
		require.NoError(t, err)

		script, err := ParseScript(strings.NewReader(string(out)))
		require.NoError(t, err)
		fields := strings.Fields(script.Paths[0].ViewBox)
		require.Len(t, fields, 4)
		assert.Equal(t, []string{"0", "0", vb.Width, vb.Height}, fields)
	}
}

func TestParseScriptErrors(t *testing.T) {
	for _, src := range []string{
		"garbage",
		"def path p0 {\n d=\"M0 0\"\n",
		"def path p0 {\n d=M0 0\n}\n",
		"def path p0 {\n d=\"M0 0\"\n viewBox=\"0 0 1 1\"\n x=0\n y=0\n fillColor=0x000000\n}\n",
		"def path p0 {\n d=\"M0 0\"\n d=\"M0 0\"\n}\n",
		"def path p0 {\n color=red\n}\n",
		"set p0 {} 1000ms\n",
		squareBAS + "set p0 {} 10s\n",
		squareBAS + squareBAS,
		squareBAS + strings.Replace(squareBAS, "p0", "p1", -1),
	} {
		_, err := ParseScript(strings.NewReader(src))
		var se *SyntaxError
		assert.True(t, errors.As(err, &se), "expected syntax error for %q, got %v", src, err)
	}
}
