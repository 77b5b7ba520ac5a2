package theory

import (
	"fmt"
	"strings"
)

// Quality is the two-way chord classification used by the diagram
type Quality int

const (
	Major Quality = iota
	Minor
)

func (q Quality) String() string {
	if q == Minor {
		return "minor"
	}
	return "major"
}

// DisplayName returns the legend label for the quality
func (q Quality) DisplayName() string {
	if q == Minor {
		return "Minor Chord"
	}
	return "Major Chord"
}

// MarshalText lets Quality serialize as "major"/"minor"
func (q Quality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *Quality) UnmarshalText(text []byte) error {
	switch string(text) {
	case "major":
		*q = Major
	case "minor":
		*q = Minor
	default:
		return fmt.Errorf("unknown chord quality %q", text)
	}
	return nil
}

// Classify tags a chord label as Minor when it contains "m" but not "maj".
// This is a textual heuristic: dim chords come out Minor, aug/sus chords Major,
// and any label with an incidental "m" is Minor.
func Classify(label string) Quality {
	if strings.Contains(label, "m") && !strings.Contains(label, "maj") {
		return Minor
	}
	return Major
}

// Kind is the triad quality recovered by ParseChord
type Kind string

const (
	KindMajor      Kind = "major"
	KindMinor      Kind = "minor"
	KindDiminished Kind = "diminished"
	KindAugmented  Kind = "augmented"
	KindSus2       Kind = "sus2"
	KindSus4       Kind = "sus4"
)

// Chord is a parsed chord symbol such as "F♯m7/C♯"
type Chord struct {
	Symbol     string   `json:"symbol"`
	Root       string   `json:"root"`
	Kind       Kind     `json:"kind"`
	Extensions []string `json:"extensions,omitempty"`
	Bass       string   `json:"bass,omitempty"`
}

var validRoots = map[string]bool{
	"C": true, "C#": true, "Db": true, "D": true, "D#": true, "Eb": true,
	"E": true, "F": true, "F#": true, "Gb": true, "G": true, "G#": true,
	"Ab": true, "A": true, "A#": true, "Bb": true, "B": true,
	"Cb": true, "E#": true, "Fb": true, "B#": true,
}

// ParseChord splits a chord symbol into root, triad kind, extensions and slash bass.
// Both ASCII (#, b) and Unicode (♯, ♭) accidentals are accepted.
func ParseChord(symbol string) (Chord, error) {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return Chord{}, fmt.Errorf("empty chord symbol")
	}

	chord := Chord{Symbol: symbol}

	// Slash bass ("Emin/G" -> "Emin", "G")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		bass, _, err := splitRoot(strings.TrimSpace(s[i+1:]))
		if err != nil {
			return Chord{}, fmt.Errorf("invalid bass note in %q: %w", symbol, err)
		}
		chord.Bass = bass
		s = strings.TrimSpace(s[:i])
	}

	root, rest, err := splitRoot(s)
	if err != nil {
		return Chord{}, fmt.Errorf("invalid chord root in %q: %w", symbol, err)
	}
	chord.Root = root
	chord.Kind = parseKind(rest)
	chord.Extensions = parseExtensions(rest)

	return chord, nil
}

// splitRoot returns the normalized (ASCII) root and the remainder of the symbol
func splitRoot(s string) (string, string, error) {
	if s == "" {
		return "", "", fmt.Errorf("empty note")
	}

	letter := strings.ToUpper(s[:1])
	rest := s[1:]
	accidental := ""
	switch {
	case strings.HasPrefix(rest, "#"), strings.HasPrefix(rest, "b"):
		accidental = rest[:1]
		rest = rest[1:]
	case strings.HasPrefix(rest, "♯"):
		accidental = "#"
		rest = strings.TrimPrefix(rest, "♯")
	case strings.HasPrefix(rest, "♭"):
		accidental = "b"
		rest = strings.TrimPrefix(rest, "♭")
	}

	root := letter + accidental
	if !validRoots[root] {
		return "", "", fmt.Errorf("invalid root note: %s", root)
	}
	return root, rest, nil
}

func parseKind(rest string) Kind {
	switch {
	case strings.HasPrefix(rest, "maj"), strings.HasPrefix(rest, "M"):
		return KindMajor
	case strings.HasPrefix(rest, "min"), strings.HasPrefix(rest, "m"), strings.HasPrefix(rest, "-"):
		return KindMinor
	case strings.HasPrefix(rest, "dim"), strings.HasPrefix(rest, "°"):
		return KindDiminished
	case strings.HasPrefix(rest, "aug"), strings.HasPrefix(rest, "+"):
		return KindAugmented
	case strings.HasPrefix(rest, "sus2"):
		return KindSus2
	case strings.HasPrefix(rest, "sus4"), strings.HasPrefix(rest, "sus"):
		return KindSus4
	}
	return KindMajor
}

func parseExtensions(rest string) []string {
	var extensions []string

	// maj7 must come out before the quality prefix is trimmed, or "maj7" turns into "aj7"
	for _, ext := range []string{"maj7", "min7"} {
		if strings.Contains(rest, ext) {
			extensions = append(extensions, ext)
			rest = strings.ReplaceAll(rest, ext, "")
		}
	}
	for _, prefix := range []string{"min", "dim", "aug", "sus2", "sus4", "sus", "m", "-", "+"} {
		if strings.HasPrefix(rest, prefix) {
			rest = strings.TrimPrefix(rest, prefix)
			break
		}
	}

	for _, ext := range []string{"add9", "add11", "add13"} {
		if strings.Contains(rest, ext) {
			extensions = append(extensions, ext)
			rest = strings.ReplaceAll(rest, ext, "")
		}
	}
	for _, ext := range []string{"13", "11", "9", "7", "6"} {
		if strings.Contains(rest, ext) {
			extensions = append(extensions, ext)
			rest = strings.ReplaceAll(rest, ext, "")
		}
	}

	return extensions
}

// Quality folds the parsed triad kind onto the diagram's Major/Minor split
func (c Chord) Quality() Quality {
	switch c.Kind {
	case KindMinor, KindDiminished:
		return Minor
	}
	return Major
}

// ClassifyStrict uses the parsed chord kind when the label parses and falls back
// to Classify for free text. It differs from Classify on labels such as "Cm(maj7)",
// which Classify reports as Major.
func ClassifyStrict(label string) Quality {
	chord, err := ParseChord(label)
	if err != nil {
		return Classify(label)
	}
	return chord.Quality()
}
