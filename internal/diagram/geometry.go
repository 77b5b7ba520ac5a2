package diagram

import "math"

// Fallbacks used when the caller supplies unusable dimensions
const (
	DefaultWidth     = 600.0
	DefaultHeight    = 300.0
	DefaultMinRadius = 40.0

	referenceDivisor   = 2.5
	progressionDivisor = 3.0
)

// Dimensions is the drawing area available to a render
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Radii are the two ring radii derived from the drawing area
type Radii struct {
	Reference   float64 `json:"reference"`
	Progression float64 `json:"progression"`
}

func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Sanitize replaces each non-positive or non-finite side with the matching side
// of fallback, or with DefaultWidth/DefaultHeight when fallback is unusable too.
func (d Dimensions) Sanitize(fallback Dimensions) Dimensions {
	out := d
	if !usable(out.Width) {
		out.Width = fallback.Width
		if !usable(out.Width) {
			out.Width = DefaultWidth
		}
	}
	if !usable(out.Height) {
		out.Height = fallback.Height
		if !usable(out.Height) {
			out.Height = DefaultHeight
		}
	}
	return out
}

// Radii returns min(w,h)/2.5 for the reference ring and min(w,h)/3 for the
// progression ring. An unusable side is treated as 3*minRadius so the
// progression ring lands exactly on minRadius.
func (d Dimensions) Radii(minRadius float64) Radii {
	if !usable(minRadius) {
		minRadius = DefaultMinRadius
	}

	side := math.Min(d.Width, d.Height)
	if !usable(side) {
		side = minRadius * progressionDivisor
	}

	return Radii{
		Reference:   side / referenceDivisor,
		Progression: side / progressionDivisor,
	}
}

// Polar converts an angle measured clockwise from straight up into surface
// coordinates on a circle of radius r.
func Polar(angleRadians, r float64) (x, y float64) {
	return math.Sin(angleRadians) * r, -math.Cos(angleRadians) * r
}

// Radians converts degrees to radians
func Radians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
