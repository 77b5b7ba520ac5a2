package theory

// ExplanationHeading is shared by every explanation, known pattern or not
const ExplanationHeading = "Music Theory Explanation"

// Explanation is the theory note shown under a diagram
type Explanation struct {
	Heading string   `json:"heading"`
	Body    []string `json:"body"`
}

// Pattern names with a dedicated explanation
const (
	PatternBlues      = "I-IV-V"
	PatternPop        = "I-V-vi-IV"
	PatternJazz       = "ii-V-I"
	PatternAxis       = "vi-IV-I-V"
	PatternFifties    = "I-vi-IV-V"
	PatternAndalusian = "i-bVI-bIII-bVII"
)

var explanations = map[string][]string{
	PatternBlues: {
		"The I-IV-V progression is one of the most common in popular music, especially in blues and rock. These are the three major chords in a major scale.",
		"It creates a strong sense of resolution when returning to the I chord.",
	},
	PatternPop: {
		"The I-V-vi-IV progression is extremely popular in contemporary pop music. It's sometimes called the \"pop-punk progression\" or \"sensitive female chord progression\".",
		"The vi chord adds an emotional quality by introducing a minor chord.",
	},
	PatternJazz: {
		"The ii-V-I progression is the backbone of jazz harmony. It creates a strong pull toward the tonic (I) chord.",
		"In jazz, these chords are often played as 7th chords: ii7-V7-Imaj7.",
	},
	PatternAxis: {
		"This is a variation of the I-V-vi-IV progression, starting on the relative minor chord. It's used in many pop and rock songs and creates a more melancholic feeling.",
	},
	PatternFifties: {
		"The I-vi-IV-V progression, also known as the '50s progression', was common in doo-wop and early rock and roll.",
		"It has a nostalgic quality and creates a strong sense of resolution.",
	},
}

var fallbackExplanation = []string{
	"This chord progression creates a unique harmonic journey. The relationships between these chords create tension and resolution that gives the music its emotional quality.",
	"When analyzing chord progressions, consider how each chord relates to the key of the song and how they create movement toward or away from the tonic (I) chord.",
}

// Explain resolves a pattern name to its explanation. Matching is exact and
// case-sensitive; anything unknown, including "", gets the generic text.
func Explain(pattern string) Explanation {
	body, ok := explanations[pattern]
	if !ok {
		body = fallbackExplanation
	}
	return Explanation{
		Heading: ExplanationHeading,
		Body:    append([]string(nil), body...),
	}
}

// IsKnownPattern reports whether Explain has dedicated text for pattern
func IsKnownPattern(pattern string) bool {
	_, ok := explanations[pattern]
	return ok
}
