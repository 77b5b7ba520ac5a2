package diagram

// OpKind names a primitive draw call
type OpKind string

const (
	OpCircle OpKind = "circle"
	OpLine   OpKind = "line"
	OpText   OpKind = "text"
)

// Op is one recorded draw call. Circles use X1/Y1/R, lines X1/Y1/X2/Y2, text X1/Y1/Text.
type Op struct {
	Kind  OpKind  `json:"kind"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2,omitempty"`
	Y2    float64 `json:"y2,omitempty"`
	R     float64 `json:"r,omitempty"`
	Text  string  `json:"text,omitempty"`
	Style Style   `json:"style"`
}

// Recorder is a retained-mode Surface that keeps the draw calls in order
type Recorder struct {
	ops []Op
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear() error {
	r.ops = r.ops[:0]
	return nil
}

func (r *Recorder) DrawCircle(cx, cy, radius float64, style Style) error {
	r.ops = append(r.ops, Op{Kind: OpCircle, X1: cx, Y1: cy, R: radius, Style: style})
	return nil
}

func (r *Recorder) DrawLine(x1, y1, x2, y2 float64, style Style) error {
	r.ops = append(r.ops, Op{Kind: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Style: style})
	return nil
}

func (r *Recorder) DrawText(x, y float64, text string, style Style) error {
	r.ops = append(r.ops, Op{Kind: OpText, X1: x, Y1: y, Text: text, Style: style})
	return nil
}

// Ops returns a copy of the recorded calls
func (r *Recorder) Ops() []Op {
	return append([]Op(nil), r.ops...)
}

// Replay draws the recorded calls onto another surface, after clearing it
func (r *Recorder) Replay(dst Surface) error {
	if err := dst.Clear(); err != nil {
		return err
	}
	for _, op := range r.ops {
		var err error
		switch op.Kind {
		case OpCircle:
			err = dst.DrawCircle(op.X1, op.Y1, op.R, op.Style)
		case OpLine:
			err = dst.DrawLine(op.X1, op.Y1, op.X2, op.Y2, op.Style)
		case OpText:
			err = dst.DrawText(op.X1, op.Y1, op.Text, op.Style)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
