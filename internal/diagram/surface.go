package diagram

// Style carries the presentation attributes of one primitive. Empty fields are
// left to the backend's defaults.
type Style struct {
	Class       string  `json:"class,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	FontWeight  string  `json:"font_weight,omitempty"`
	Anchor      string  `json:"anchor,omitempty"`
	DY          string  `json:"dy,omitempty"`
}

// Surface is the drawing target for a render. Coordinates are relative to the
// diagram centre with y growing downward; backends translate to their own origin.
type Surface interface {
	Clear() error
	DrawCircle(cx, cy, r float64, style Style) error
	DrawLine(x1, y1, x2, y2 float64, style Style) error
	DrawText(x, y float64, text string, style Style) error
}

// Presentation defaults for the diagram elements
const (
	NodeRadius    = 25.0
	OrdinalOffset = 40.0

	colorRing       = "#ccc"
	colorEdge       = "#aaa"
	colorMajorNode  = "#007bff"
	colorMinorNode  = "#6c757d"
	colorNodeStroke = "#fff"
	colorNodeText   = "#fff"
	colorOrdinal    = "#333"
	textBaselineDY  = "0.35em"
	textAnchorMid   = "middle"
)

var (
	ringStyle = Style{Class: "key-circle", Fill: "none", Stroke: colorRing, StrokeWidth: 1}
	edgeStyle = Style{Class: "chord-connection", Stroke: colorEdge, StrokeWidth: 2}

	majorKeyStyle = Style{Class: "key-text major", Anchor: textAnchorMid, DY: textBaselineDY}
	minorKeyStyle = Style{Class: "key-text minor", Anchor: textAnchorMid, DY: textBaselineDY}

	chordTextStyle   = Style{Class: "chord-text", Fill: colorNodeText, FontWeight: "bold", Anchor: textAnchorMid, DY: textBaselineDY}
	ordinalTextStyle = Style{Class: "chord-ordinal", Fill: colorOrdinal, Anchor: textAnchorMid}
	placeholderStyle = Style{Class: "placeholder", Fill: colorOrdinal, Anchor: textAnchorMid, DY: textBaselineDY}
)

func nodeStyle(minor bool) Style {
	style := Style{Class: "chord-node major", Fill: colorMajorNode, Stroke: colorNodeStroke, StrokeWidth: 2}
	if minor {
		style.Class = "chord-node minor"
		style.Fill = colorMinorNode
	}
	return style
}
