package diagram

import (
	"math"

	"github.com/Conceptual-Machines/progression-wheel/internal/theory"
)

// LayoutPoint is one progression chord placed on the circle
type LayoutPoint struct {
	X            float64        `json:"x"`
	Y            float64        `json:"y"`
	Label        string         `json:"label"`
	Quality      theory.Quality `json:"quality"`
	Ordinal      int            `json:"ordinal"`
	AngleRadians float64        `json:"angle_radians"`
}

// Edge joins Points[From] to Points[To]. The last edge wraps back to the first point.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// SelfLoop reports whether the edge starts and ends on the same point (N = 1)
func (e Edge) SelfLoop() bool {
	return e.From == e.To
}

// Classifier assigns a quality to a chord label
type Classifier func(label string) theory.Quality

// AngleStep is the angular spacing, in radians, between n evenly spaced chords
func AngleStep(n int) float64 {
	return (2 * math.Pi) / float64(n)
}

// Layout places chords evenly on a circle of the given radius, starting at the
// top and going clockwise, using theory.Classify for quality.
func Layout(chords []string, radius float64) ([]LayoutPoint, []Edge) {
	return LayoutWith(chords, radius, theory.Classify)
}

// LayoutWith is Layout with a caller-chosen classifier. It returns nil, nil for
// an empty progression.
func LayoutWith(chords []string, radius float64, classify Classifier) ([]LayoutPoint, []Edge) {
	n := len(chords)
	if n == 0 {
		return nil, nil
	}
	if classify == nil {
		classify = theory.Classify
	}

	step := AngleStep(n)
	points := make([]LayoutPoint, n)
	edges := make([]Edge, n)

	for i, chord := range chords {
		angle := float64(i) * step
		x, y := Polar(angle, radius)
		points[i] = LayoutPoint{
			X:            x,
			Y:            y,
			Label:        chord,
			Quality:      classify(chord),
			Ordinal:      i + 1,
			AngleRadians: angle,
		}
		edges[i] = Edge{From: i, To: (i + 1) % n}
	}

	return points, edges
}
