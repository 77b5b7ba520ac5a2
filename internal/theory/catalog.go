package theory

import "strings"

// CommonProgression is a catalog entry for a well-known progression
type CommonProgression struct {
	Pattern  string   `json:"pattern" yaml:"pattern"`
	Name     string   `json:"name" yaml:"name"`
	Examples []string `json:"examples" yaml:"examples"`
}

var commonProgressions = []CommonProgression{
	{Pattern: PatternPop, Name: "Pop Progression", Examples: []string{"Let It Be", "Don't Stop Believin'"}},
	{Pattern: PatternBlues, Name: "Blues Progression", Examples: []string{"Sweet Home Alabama", "Twist and Shout"}},
	{Pattern: PatternJazz, Name: "Jazz Progression", Examples: []string{"Autumn Leaves", "Fly Me to the Moon"}},
	{Pattern: PatternAxis, Name: "Axis of Awesome", Examples: []string{"Let It Be", "No Woman No Cry"}},
	{Pattern: PatternFifties, Name: "50s Progression", Examples: []string{"Stand By Me", "Earth Angel"}},
	{Pattern: PatternAndalusian, Name: "Andalusian Cadence", Examples: []string{"Hit the Road Jack", "Sultans of Swing"}},
}

// CommonProgressions returns a copy of the progression catalog
func CommonProgressions() []CommonProgression {
	out := make([]CommonProgression, len(commonProgressions))
	for i, p := range commonProgressions {
		p.Examples = append([]string(nil), p.Examples...)
		out[i] = p
	}
	return out
}

// PatternChords turns a pattern name into its numeral labels ("I-V-vi-IV" -> I, V, vi, IV).
// Empty segments are dropped, so "" yields no chords.
func PatternChords(pattern string) []string {
	var chords []string
	for _, part := range strings.Split(pattern, "-") {
		if part = strings.TrimSpace(part); part != "" {
			chords = append(chords, part)
		}
	}
	return chords
}
