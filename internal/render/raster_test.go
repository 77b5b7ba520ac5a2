package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/Conceptual-Machines/progression-wheel/internal/diagram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertColorNear(t *testing.T, img image.Image, x, y int, want color.RGBA, tolerance int) {
	t.Helper()
	r, g, b, _ := img.At(x, y).RGBA()
	got := [3]int{int(r >> 8), int(g >> 8), int(b >> 8)}
	exp := [3]int{int(want.R), int(want.G), int(want.B)}
	for i := range got {
		diff := got[i] - exp[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			t.Errorf("pixel (%d,%d): got %v, want %v", x, y, got, exp)
			return
		}
	}
}

func renderRaster(t *testing.T, prog diagram.Progression) *Raster {
	t.Helper()
	dims := diagram.Dimensions{Width: 600, Height: 300}
	raster := NewRaster(dims, 2)
	_, err := diagram.Render(raster, prog, diagram.Options{Dimensions: dims})
	require.NoError(t, err)
	return raster
}

func TestRasterNodes(t *testing.T) {
	raster := renderRaster(t, diagram.Progression{Chords: []string{"C", "Am", "F", "G"}})
	img := raster.Image()

	require.Equal(t, image.Rect(0, 0, 600, 300), img.Bounds())

	// Corners stay paper white
	assertColorNear(t, img, 0, 0, color.RGBA{255, 255, 255, 255}, 1)
	assertColorNear(t, img, 599, 299, color.RGBA{255, 255, 255, 255}, 1)

	// Node interiors, clear of the chord label: C at the top, Am on the right
	assertColorNear(t, img, 315, 50, color.RGBA{0x00, 0x7b, 0xff, 255}, 3)
	assertColorNear(t, img, 400, 165, color.RGBA{0x6c, 0x75, 0x7d, 255}, 3)
}

func TestRasterClear(t *testing.T) {
	raster := renderRaster(t, diagram.Progression{Chords: []string{"C", "G"}})
	require.NoError(t, raster.Clear())

	img := raster.Image()
	assertColorNear(t, img, 315, 50, color.RGBA{255, 255, 255, 255}, 1)
}

func TestRasterEncodePNG(t *testing.T) {
	raster := renderRaster(t, diagram.Progression{Chords: []string{"D", "Bm", "G", "A"}, Pattern: "I-vi-IV-V"})

	var buf bytes.Buffer
	require.NoError(t, raster.EncodePNG(&buf))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 600, decoded.Bounds().Dx())
	assert.Equal(t, 300, decoded.Bounds().Dy())
}

func TestRasterDeterministic(t *testing.T) {
	prog := diagram.Progression{Chords: []string{"E♭", "Cm", "A♭", "B♭"}}

	var first, second bytes.Buffer
	require.NoError(t, renderRaster(t, prog).EncodePNG(&first))
	require.NoError(t, renderRaster(t, prog).EncodePNG(&second))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestRasterInvalidColor(t *testing.T) {
	raster := NewRaster(diagram.Dimensions{Width: 50, Height: 50}, 1)
	err := raster.DrawCircle(0, 0, 10, diagram.Style{Fill: "not-a-colour"})
	assert.Error(t, err)

	err = raster.DrawLine(0, 0, 10, 10, diagram.Style{Stroke: "none"})
	assert.NoError(t, err)
}

func TestEmOffset(t *testing.T) {
	assert.InDelta(t, 4.55, emOffset("0.35em", 13), 1e-9)
	assert.Equal(t, 4.0, emOffset("4", 13))
	assert.Equal(t, 4.0, emOffset("4px", 13))
	assert.Equal(t, 0.0, emOffset("", 13))
	assert.Equal(t, 0.0, emOffset("abc", 13))
}

func TestParseColor(t *testing.T) {
	c, ok, err := parseColor("#ccc", false)
	require.NoError(t, err)
	assert.True(t, ok)
	r, g, b := c.RGB255()
	assert.Equal(t, [3]uint8{0xcc, 0xcc, 0xcc}, [3]uint8{r, g, b})

	_, ok, err = parseColor("none", true)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = parseColor("", true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVisibleSpan(t *testing.T) {
	tests := []struct {
		name     string
		left     float64
		span     int
		canvas   int
		wantFrom int
		wantTo   int
	}{
		{name: "fully inside", left: -10, span: 20, canvas: 200, wantFrom: 0, wantTo: 20},
		{name: "clipped left", left: -110, span: 20, canvas: 200, wantFrom: 10, wantTo: 20},
		{name: "clipped right", left: 95, span: 20, canvas: 200, wantFrom: 0, wantTo: 6},
		{name: "wider than canvas", left: -1e6, span: 2e6, canvas: 200, wantFrom: 999900, wantTo: 1000101},
		{name: "off canvas", left: 500, span: 20, canvas: 200, wantFrom: 0, wantTo: -399},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := visibleSpan(tt.left, tt.span, tt.canvas)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}

func TestRasterTextInks(t *testing.T) {
	raster := NewRaster(diagram.Dimensions{Width: 60, Height: 60}, 1)
	require.NoError(t, raster.DrawText(0, 0, "C", diagram.Style{Fill: "#000", Anchor: "middle", DY: "0.35em"}))

	img := raster.Image()
	inked := false
	for y := 20; y < 40 && !inked; y++ {
		for x := 20; x < 40; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r>>8 < 128 {
				inked = true
				break
			}
		}
	}
	assert.True(t, inked, "label should be drawn near the centre")
}

func TestRasterLongLabelIsClipped(t *testing.T) {
	raster := NewRaster(diagram.Dimensions{Width: 200, Height: 200}, 2)
	label := strings.Repeat("C", 200000)

	require.NoError(t, raster.DrawText(0, 0, label, diagram.Style{Fill: "#000", Anchor: "middle"}))
	require.NoError(t, raster.DrawText(5000, 0, label, diagram.Style{Fill: "#000"}))
	require.NoError(t, raster.DrawText(0, 5000, "C", diagram.Style{Fill: "#000"}))
	assert.Equal(t, image.Rect(0, 0, 400, 400), raster.canvas.Bounds())
}

func TestNewRasterBoundsCanvas(t *testing.T) {
	tests := []struct {
		name      string
		dims      diagram.Dimensions
		scale     int
		wantScale int
		wantSize  image.Point
	}{
		{name: "default scale", dims: diagram.Dimensions{Width: 600, Height: 300}, scale: 0, wantScale: DefaultScale, wantSize: image.Pt(1200, 600)},
		{name: "scale lowered", dims: diagram.Dimensions{Width: 3000, Height: 1000}, scale: 2, wantScale: 1, wantSize: image.Pt(3000, 1000)},
		{name: "partial scale", dims: diagram.Dimensions{Width: 1000, Height: 100}, scale: 8, wantScale: 4, wantSize: image.Pt(4000, 400)},
		{name: "output clamped", dims: diagram.Dimensions{Width: 10000, Height: 10}, scale: 2, wantScale: 1, wantSize: image.Pt(MaxCanvasSide, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raster := NewRaster(tt.dims, tt.scale)
			assert.Equal(t, tt.wantScale, raster.scale)
			assert.Equal(t, tt.wantSize, raster.canvas.Bounds().Size())
		})
	}
}
