package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Conceptual-Machines/progression-wheel/internal/diagram"
	"github.com/Conceptual-Machines/progression-wheel/internal/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DIAGRAM_WIDTH", "")
	t.Setenv("DIAGRAM_HEIGHT", "")
	t.Setenv("RASTER_SCALE", "1")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderSVG(t *testing.T) {
	out, err := execute(t, "render", "--chords", "C,Am,F,G", "--pattern", theory.PatternFifties)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, "<title>Progression: I-vi-IV-V</title>")
	assert.Equal(t, 4, strings.Count(out, `class="chord-node`))
}

func TestRenderEmptyDrawsPlaceholder(t *testing.T) {
	out, err := execute(t, "render")
	require.NoError(t, err)
	assert.Contains(t, out, diagram.PlaceholderText)
}

func TestRenderJSON(t *testing.T) {
	out, err := execute(t, "render", "--chords", "Dm,G7,Cmaj7", "--pattern", theory.PatternJazz, "--format", "json")
	require.NoError(t, err)

	var body struct {
		Points      []diagram.LayoutPoint `json:"points"`
		Explanation *theory.Explanation   `json:"explanation"`
		Ops         []diagram.Op          `json:"ops"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	require.Len(t, body.Points, 3)
	assert.Equal(t, theory.Minor, body.Points[0].Quality)
	assert.Equal(t, theory.Major, body.Points[2].Quality)
	require.NotNil(t, body.Explanation)
	assert.Equal(t, theory.Explain(theory.PatternJazz), *body.Explanation)
	assert.NotEmpty(t, body.Ops)
}

func TestRenderPNGToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	_, err := execute(t, "render", "--chords", "C,G", "--format", "png", "--width", "160", "--height", "90", "-o", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestRenderFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progression.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`chords: [Am, F, C, G]
pattern: vi-IV-I-V
width: 300
height: 300
`), 0o644))

	out, err := execute(t, "render", "-f", path, "--format", "json")
	require.NoError(t, err)

	var body struct {
		Dimensions diagram.Dimensions    `json:"dimensions"`
		Points     []diagram.LayoutPoint `json:"points"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, diagram.Dimensions{Width: 300, Height: 300}, body.Dimensions)
	require.Len(t, body.Points, 4)
	assert.Equal(t, "Am", body.Points[0].Label)
}

func TestRenderFlagsOverrideYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progression.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chords: [Am, F]\n"), 0o644))

	out, err := execute(t, "render", "-f", path, "--chords", "C", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"label": "C"`)
	assert.NotContains(t, out, `"label": "Am"`)
}

func TestRenderFromPattern(t *testing.T) {
	out, err := execute(t, "render", "--pattern", theory.PatternPop, "--from-pattern", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"label": "vi"`)
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown format", args: []string{"render", "--format", "gif"}, want: "unknown format"},
		{name: "missing file", args: []string{"render", "-f", "does-not-exist.yaml"}, want: "failed to read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPatterns(t *testing.T) {
	out, err := execute(t, "patterns")
	require.NoError(t, err)

	for _, p := range theory.CommonProgressions() {
		assert.Contains(t, out, p.Pattern)
		assert.Contains(t, out, p.Name)
	}
}

func TestExplain(t *testing.T) {
	out, err := execute(t, "explain", theory.PatternBlues)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, theory.ExplanationHeading))
	for _, paragraph := range theory.Explain(theory.PatternBlues).Body {
		assert.Contains(t, out, paragraph)
	}

	_, err = execute(t, "explain")
	assert.Error(t, err)
}

func TestRenderFormatsShareOneRender(t *testing.T) {
	args := []string{"render", "--chords", "C,Am,F,G", "--pattern", theory.PatternFifties}

	svg, err := execute(t, args...)
	require.NoError(t, err)

	out, err := execute(t, append(args, "--format", "json")...)
	require.NoError(t, err)

	var body struct {
		Ops []diagram.Op `json:"ops"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))

	counts := map[diagram.OpKind]int{}
	for _, op := range body.Ops {
		counts[op.Kind]++
	}
	assert.Equal(t, counts[diagram.OpCircle], strings.Count(svg, "<circle"))
	assert.Equal(t, counts[diagram.OpLine], strings.Count(svg, "<line"))
	assert.Equal(t, counts[diagram.OpText], strings.Count(svg, "<text"))
}
