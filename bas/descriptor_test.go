package bas

import (
	"encoding/xml"
	"errors"
	"testing"

	"github.com/benoitkugler/svgbas/svgdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawPath(attrs ...string) svgdoc.RawPath {
	var out svgdoc.RawPath
	for i := 0; i+1 < len(attrs); i += 2 {
		out.Attrs = append(out.Attrs, xml.Attr{Name: xml.Name{Local: attrs[i]}, Value: attrs[i+1]})
	}
	return out
}

var square = svgdoc.ViewBox{Width: "640", Height: "640"}

func TestMapPath(t *testing.T) {
	raw := rawPath("d", "M0 0 L640 0 L640 640 Z", "fill", "#FECB02", "transform", "translate(0,0)", "stroke", "#000000")
	pd, err := MapPath(square, raw, "p0", 1)
	require.NoError(t, err)
	assert.Equal(t, PathDescriptor{
		ID:        "p0",
		D:         "M0 0 L640 0 L640 640 Z",
		ViewBox:   "0 0 640 640",
		X:         "0",
		Y:         "0",
		FillColor: "0xFECB02",
		ZIndex:    1,
	}, pd)
}

func TestMapKeepsText(t *testing.T) {
	vb := svgdoc.ViewBox{Width: "10.50cm", Height: "1280px"}
	raw := rawPath("d", "M0 0 ", "fill", "#fecB02", "transform", "translate(12.5,640)")
	pd, err := MapPath(vb, raw, "layer", 7)
	require.NoError(t, err)

	assert.Equal(t, "0 0 10.50cm 1280px", pd.ViewBox)
	assert.Equal(t, "M0 0 ", pd.D)
	assert.Equal(t, "12.5", pd.X)
	assert.Equal(t, "640", pd.Y)
	assert.Equal(t, "0xfecB02", pd.FillColor)
	assert.Equal(t, "layer", pd.ID)
	assert.Equal(t, 7, pd.ZIndex)
}

func TestFillColor(t *testing.T) {
	for v, exp := range map[string]string{
		"#FECB02": "0xFECB02",
		"#000000": "0x000000",
		"#abc":    "0xaabbcc",
		"#AbC":    "0xAAbbCC",
	} {
		got, err := fillColor(v)
		require.NoError(t, err, v)
		assert.Equal(t, exp, got)
	}

	for _, v := range []string{"", "FECB02", "rgb(254,250,241)", "red", "#", "#FECB0", "#FECB021", "#GGGGGG", "none"} {
		_, err := fillColor(v)
		var ce *InvalidColorError
		require.True(t, errors.As(err, &ce), v)
		assert.Equal(t, v, ce.Value)
	}
}

func TestTranslation(t *testing.T) {
	for v, exp := range map[string][2]string{
		"translate(0,0)":          {"0", "0"},
		"translate(12.5,640)":     {"12.5", "640"},
		"translate(-3, 4.25)":     {"-3", "4.25"},
		" translate ( 1 2 ) ":     {"1", "2"},
		"translate(1e2,-.5)":      {"1e2", "-.5"},
		"translate(0.000,10.10)": {"0.000", "10.10"},
	} {
		x, y, err := translation(v)
		require.NoError(t, err, v)
		assert.Equal(t, exp, [2]string{x, y}, v)
	}

	for _, v := range []string{
		"",
		"translate(1)",
		"translate(1,2,3)",
		"translate(1,2",
		"scale(2,2)",
		"translate(1,2) scale(2)",
		"translate(a,b)",
		"translate(Inf,NaN)",
		"translate(0x10,1)",
		"matrix(1,0,0,1,0,0)",
	} {
		_, _, err := translation(v)
		var te *InvalidTransformError
		assert.True(t, errors.As(err, &te), v)
	}
}

func TestMapPathErrors(t *testing.T) {
	_, err := MapPath(square, rawPath("d", "M0 0", "fill", "#FFFFFF"), "p0", 1)
	var te *InvalidTransformError
	require.True(t, errors.As(err, &te))
	assert.True(t, te.Missing)

	_, err = MapPath(square, rawPath("d", "M0 0", "transform", "translate(0,0)"), "p0", 1)
	var ce *InvalidColorError
	require.True(t, errors.As(err, &ce))
	assert.True(t, ce.Missing)

	_, err = MapPath(square, rawPath("fill", "#FFFFFF", "transform", "translate(0,0)"), "p0", 1)
	var ge *InvalidGeometryError
	require.True(t, errors.As(err, &ge))
	assert.True(t, ge.Missing)

	_, err = MapPath(square, rawPath("d", `M0 0 "`, "fill", "#FFFFFF", "transform", "translate(0,0)"), "p0", 1)
	require.True(t, errors.As(err, &ge))
	assert.False(t, ge.Missing)
}

func TestCheckGeometry(t *testing.T) {
	pd := PathDescriptor{D: "M0 0 L10 10"}
	assert.NoError(t, pd.CheckGeometry())

	pd.D = "0 0 L10 10"
	err := pd.CheckGeometry()
	var ge *InvalidGeometryError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "0 0 L10 10", ge.Value)
}

func TestDescriptorString(t *testing.T) {
	pd := PathDescriptor{ID: "p1", D: "M1 1", ViewBox: "0 0 1 2", X: "3", Y: "4", FillColor: "0x0A0B0C", ZIndex: 2}
	assert.Equal(t, `def path p1 {
    d="M1 1"
    viewBox="0 0 1 2"
    x=3
    y=4
    fillColor=0x0A0B0C
    zIndex=2
}
`, pd.String())
}
