package diagram

import (
	"errors"
	"testing"

	"github.com/Conceptual-Machines/progression-wheel/internal/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEndToEnd(t *testing.T) {
	rec := NewRecorder()
	prog := Progression{Chords: []string{"C", "Am", "F", "G"}, Pattern: "I-vi-IV-V"}

	result, err := Render(rec, prog, Options{Dimensions: Dimensions{Width: 600, Height: 300}})
	require.NoError(t, err)

	assert.Equal(t, "Progression: I-vi-IV-V", result.Title)
	assert.False(t, result.Empty)
	assert.InDelta(t, 120, result.Radii.Reference, epsilon)
	assert.InDelta(t, 100, result.Radii.Progression, epsilon)

	require.Len(t, result.Points, 4)
	require.Len(t, result.Edges, 4)
	for i, degrees := range []float64{0, 90, 180, 270} {
		assert.InDelta(t, Radians(degrees), result.Points[i].AngleRadians, epsilon)
	}

	require.Len(t, result.Legend, 4)
	qualities := []string{"Major Chord", "Minor Chord", "Major Chord", "Major Chord"}
	for i, row := range result.Legend {
		assert.Equal(t, prog.Chords[i], row.Label)
		assert.Equal(t, i+1, row.Ordinal)
		assert.Equal(t, qualities[i], row.QualityName)
	}

	require.NotNil(t, result.Explanation)
	assert.Equal(t, "Music Theory Explanation", result.Explanation.Heading)
	assert.Contains(t, result.Explanation.Body[0], "'50s progression'")
}

func TestRenderDrawOrder(t *testing.T) {
	rec := NewRecorder()
	_, err := Render(rec, Progression{Chords: []string{"C", "Am", "F"}, Pattern: "x"}, Options{})
	require.NoError(t, err)

	ops := rec.Ops()
	// ring + 24 key labels + 3 edges + 3 nodes + 6 labels
	require.Len(t, ops, 1+24+3+3+6)

	assert.Equal(t, OpCircle, ops[0].Kind)
	assert.Equal(t, "key-circle", ops[0].Style.Class)

	for i := 1; i <= 24; i++ {
		assert.Equal(t, OpText, ops[i].Kind, "op %d", i)
	}
	assert.Equal(t, "C", ops[1].Text)
	assert.Equal(t, "Am", ops[2].Text)
	assert.Equal(t, "F", ops[23].Text)
	assert.Equal(t, "Dm", ops[24].Text)

	for i := 25; i < 28; i++ {
		assert.Equal(t, OpLine, ops[i].Kind, "op %d", i)
	}
	for i := 28; i < 31; i++ {
		assert.Equal(t, OpCircle, ops[i].Kind, "op %d", i)
		assert.Equal(t, NodeRadius, ops[i].R)
	}
	assert.Equal(t, colorMinorNode, ops[29].Style.Fill)
	assert.Equal(t, colorMajorNode, ops[30].Style.Fill)

	assert.Equal(t, "C", ops[31].Text)
	assert.Equal(t, "1", ops[32].Text)
	assert.InDelta(t, ops[31].Y1+OrdinalOffset, ops[32].Y1, epsilon)
}

func TestRenderMinorLabelsInsideRing(t *testing.T) {
	rec := NewRecorder()
	result, err := Render(rec, Progression{Chords: []string{"C"}}, Options{})
	require.NoError(t, err)

	ops := rec.Ops()
	// Am sits at 15° on 0.85 of the reference radius
	x, y := Polar(Radians(15), result.Radii.Reference*theory.MinorRadiusRatio)
	assert.InDelta(t, x, ops[2].X1, epsilon)
	assert.InDelta(t, y, ops[2].Y1, epsilon)
}

func TestRenderIdempotent(t *testing.T) {
	prog := Progression{Chords: []string{"Dm7", "G7", "Cmaj7"}, Pattern: "ii-V-I"}

	rec := NewRecorder()
	first, err := Render(rec, prog, Options{})
	require.NoError(t, err)
	firstOps := rec.Ops()

	second, err := Render(rec, prog, Options{})
	require.NoError(t, err)

	assert.Equal(t, firstOps, rec.Ops(), "re-render on the same surface must not append")
	assert.Equal(t, first, second)
}

func TestRenderEmpty(t *testing.T) {
	rec := NewRecorder()
	_, err := Render(rec, Progression{Chords: []string{"C", "G"}}, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, rec.Ops())

	result, err := Render(rec, Progression{Pattern: "I-IV-V"}, Options{})
	require.NoError(t, err)

	assert.True(t, result.Empty)
	assert.Equal(t, PlaceholderText, result.Placeholder)
	assert.Nil(t, result.Points)
	assert.Nil(t, result.Legend)
	assert.Nil(t, result.Explanation)
	assert.Empty(t, rec.Ops(), "prior output must be cleared")

	require.NoError(t, DrawPlaceholder(rec))
	ops := rec.Ops()
	require.Len(t, ops, 1)
	assert.Equal(t, PlaceholderText, ops[0].Text)
}

func TestRenderSingleChordSkipsSelfLoop(t *testing.T) {
	rec := NewRecorder()
	result, err := Render(rec, Progression{Chords: []string{"Am"}}, Options{})
	require.NoError(t, err)
	require.Len(t, result.Edges, 1)

	for _, op := range rec.Ops() {
		assert.NotEqual(t, OpLine, op.Kind)
	}
}

func TestRenderDegenerateDimensions(t *testing.T) {
	rec := NewRecorder()
	result, err := Render(rec, Progression{Chords: []string{"C", "G"}}, Options{
		Dimensions: Dimensions{Width: -10, Height: 0},
		Defaults:   Dimensions{Width: 900, Height: 450},
	})
	require.NoError(t, err)

	assert.Equal(t, Dimensions{Width: 900, Height: 450}, result.Dimensions)
	assert.InDelta(t, 180, result.Radii.Reference, epsilon)
	assert.InDelta(t, 150, result.Radii.Progression, epsilon)
}

func TestRenderStrictQuality(t *testing.T) {
	prog := Progression{Chords: []string{"Am(maj7)"}}

	result, err := Render(NewRecorder(), prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, theory.Major, result.Points[0].Quality)

	result, err = Render(NewRecorder(), prog, Options{StrictQuality: true})
	require.NoError(t, err)
	assert.Equal(t, theory.Minor, result.Points[0].Quality)
}

type failingSurface struct {
	Recorder
	failOn OpKind
}

var errSurface = errors.New("surface unavailable")

func (f *failingSurface) DrawLine(x1, y1, x2, y2 float64, style Style) error {
	if f.failOn == OpLine {
		return errSurface
	}
	return f.Recorder.DrawLine(x1, y1, x2, y2, style)
}

func TestRenderSurfaceError(t *testing.T) {
	surface := &failingSurface{failOn: OpLine}
	_, err := Render(surface, Progression{Chords: []string{"C", "G"}}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errSurface)
}

func TestRecorderReplay(t *testing.T) {
	src := NewRecorder()
	_, err := Render(src, Progression{Chords: []string{"C", "F", "G"}}, Options{})
	require.NoError(t, err)

	dst := NewRecorder()
	require.NoError(t, dst.DrawText(0, 0, "stale", Style{}))
	require.NoError(t, src.Replay(dst))
	assert.Equal(t, src.Ops(), dst.Ops())
}
