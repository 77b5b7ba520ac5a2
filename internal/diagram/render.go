package diagram

import (
	"fmt"
	"strconv"

	"github.com/Conceptual-Machines/progression-wheel/internal/theory"
)

// PlaceholderText is shown instead of a diagram when there are no chords
const PlaceholderText = "No chord data available to visualize."

// Progression is the input to a render: chords in performance order plus the pattern name
type Progression struct {
	Chords  []string `json:"chords" yaml:"chords"`
	Pattern string   `json:"pattern" yaml:"pattern"`
}

// Options tune a render. The zero value renders at DefaultWidth x DefaultHeight.
type Options struct {
	Dimensions Dimensions
	// Defaults replaces unusable sides of Dimensions
	Defaults  Dimensions
	MinRadius float64
	// StrictQuality classifies with theory.ClassifyStrict instead of theory.Classify
	StrictQuality bool
}

// Result is everything a render produced besides the draw calls
type Result struct {
	Title       string              `json:"title"`
	Empty       bool                `json:"empty"`
	Placeholder string              `json:"placeholder,omitempty"`
	Dimensions  Dimensions          `json:"dimensions"`
	Radii       Radii               `json:"radii"`
	Points      []LayoutPoint       `json:"points,omitempty"`
	Edges       []Edge              `json:"edges,omitempty"`
	Legend      []LegendRow         `json:"legend,omitempty"`
	Explanation *theory.Explanation `json:"explanation,omitempty"`
}

// Render clears surface and draws the progression diagram onto it, back to
// front: reference ring, key labels, edges, chord nodes, chord and ordinal labels.
//
// An empty progression draws nothing after the clear and returns a Result with
// Empty set; callers show Placeholder (see DrawPlaceholder). The only errors are
// those reported by the surface.
func Render(surface Surface, prog Progression, opts Options) (*Result, error) {
	if err := surface.Clear(); err != nil {
		return nil, fmt.Errorf("failed to clear surface: %w", err)
	}

	dims := opts.Dimensions.Sanitize(opts.Defaults)
	result := &Result{
		Title:      "Progression: " + prog.Pattern,
		Dimensions: dims,
		Radii:      dims.Radii(opts.MinRadius),
	}

	if len(prog.Chords) == 0 {
		result.Empty = true
		result.Placeholder = PlaceholderText
		return result, nil
	}

	classify := Classifier(theory.Classify)
	if opts.StrictQuality {
		classify = theory.ClassifyStrict
	}
	result.Points, result.Edges = LayoutWith(prog.Chords, result.Radii.Progression, classify)
	result.Legend = BuildLegend(result.Points)
	explanation := theory.Explain(prog.Pattern)
	result.Explanation = &explanation

	if err := drawReferenceRing(surface, result.Radii.Reference); err != nil {
		return nil, err
	}
	if err := drawProgression(surface, result.Points, result.Edges); err != nil {
		return nil, err
	}

	return result, nil
}

// DrawPlaceholder writes PlaceholderText at the diagram centre
func DrawPlaceholder(surface Surface) error {
	if err := surface.DrawText(0, 0, PlaceholderText, placeholderStyle); err != nil {
		return fmt.Errorf("failed to draw placeholder: %w", err)
	}
	return nil
}

func drawReferenceRing(surface Surface, radius float64) error {
	if err := surface.DrawCircle(0, 0, radius, ringStyle); err != nil {
		return fmt.Errorf("failed to draw reference ring: %w", err)
	}

	minorRadius := radius * theory.MinorRadiusRatio
	for _, key := range theory.ReferenceRing() {
		x, y := Polar(Radians(key.AngleDegrees), radius)
		if err := surface.DrawText(x, y, key.Name, majorKeyStyle); err != nil {
			return fmt.Errorf("failed to draw key %s: %w", key.Name, err)
		}

		mx, my := Polar(Radians(key.MinorAngleDegrees()), minorRadius)
		if err := surface.DrawText(mx, my, key.RelativeMinor, minorKeyStyle); err != nil {
			return fmt.Errorf("failed to draw key %s: %w", key.RelativeMinor, err)
		}
	}
	return nil
}

func drawProgression(surface Surface, points []LayoutPoint, edges []Edge) error {
	for _, e := range edges {
		// A one-chord progression has only a self-loop; there is nothing to connect
		if e.SelfLoop() {
			continue
		}
		from, to := points[e.From], points[e.To]
		if err := surface.DrawLine(from.X, from.Y, to.X, to.Y, edgeStyle); err != nil {
			return fmt.Errorf("failed to draw edge %d->%d: %w", from.Ordinal, to.Ordinal, err)
		}
	}

	for _, p := range points {
		if err := surface.DrawCircle(p.X, p.Y, NodeRadius, nodeStyle(p.Quality == theory.Minor)); err != nil {
			return fmt.Errorf("failed to draw chord %s: %w", p.Label, err)
		}
	}

	for _, p := range points {
		if err := surface.DrawText(p.X, p.Y, p.Label, chordTextStyle); err != nil {
			return fmt.Errorf("failed to draw chord %s: %w", p.Label, err)
		}
		if err := surface.DrawText(p.X, p.Y+OrdinalOffset, strconv.Itoa(p.Ordinal), ordinalTextStyle); err != nil {
			return fmt.Errorf("failed to draw ordinal %d: %w", p.Ordinal, err)
		}
	}
	return nil
}
