package theory

const (
	// KeyAngleStep is the spacing between adjacent keys on the reference ring
	KeyAngleStep = 30.0
	// MinorAngleOffset rotates each relative-minor label past its major key
	MinorAngleOffset = 15.0
	// MinorRadiusRatio pulls the relative-minor labels inside the major ring
	MinorRadiusRatio = 0.85
)

// KeyPosition is one major key on the circle of fifths
type KeyPosition struct {
	Name          string  `json:"name"`
	AngleDegrees  float64 `json:"angle_degrees"`
	RelativeMinor string  `json:"relative_minor"`
}

// MinorAngleDegrees is where the relative-minor label is placed
func (k KeyPosition) MinorAngleDegrees() float64 {
	return k.AngleDegrees + MinorAngleOffset
}

// circleOfFifths pairs each major key with its relative minor, clockwise from C.
// The relative minors are a hand-written table, not derived from key signatures.
var circleOfFifths = buildRing([12][2]string{
	{"C", "Am"},
	{"G", "Em"},
	{"D", "Bm"},
	{"A", "F♯m"},
	{"E", "C♯m"},
	{"B", "G♯m"},
	{"F♯", "D♯m"},
	{"D♭", "B♭m"},
	{"A♭", "Fm"},
	{"E♭", "Cm"},
	{"B♭", "Gm"},
	{"F", "Dm"},
})

func buildRing(keys [12][2]string) [12]KeyPosition {
	var ring [12]KeyPosition
	for i, k := range keys {
		ring[i] = KeyPosition{
			Name:          k[0],
			AngleDegrees:  float64(i) * KeyAngleStep,
			RelativeMinor: k[1],
		}
	}
	return ring
}

// ReferenceRing returns the 12 circle-of-fifths keys starting at C = 0°.
// The slice is a copy; callers may modify it freely.
func ReferenceRing() []KeyPosition {
	ring := make([]KeyPosition, len(circleOfFifths))
	copy(ring, circleOfFifths[:])
	return ring
}
