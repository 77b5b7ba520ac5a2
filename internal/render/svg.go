package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/Conceptual-Machines/progression-wheel/internal/diagram"
)

// SVG is a diagram.Surface that builds scalable-vector markup
type SVG struct {
	width    float64
	height   float64
	title    string
	elements []string
}

// NewSVG creates an SVG surface; unusable dimensions fall back to the diagram defaults
func NewSVG(dims diagram.Dimensions) *SVG {
	dims = dims.Sanitize(diagram.Dimensions{})
	return &SVG{width: dims.Width, height: dims.Height}
}

// SetTitle sets the <title> of the document
func (s *SVG) SetTitle(title string) {
	s.title = title
}

func (s *SVG) Clear() error {
	s.elements = s.elements[:0]
	return nil
}

func (s *SVG) DrawCircle(cx, cy, r float64, style diagram.Style) error {
	s.elements = append(s.elements, fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f"%s/>`,
		cx, cy, r, shapeAttrs(style)))
	return nil
}

func (s *SVG) DrawLine(x1, y1, x2, y2 float64, style diagram.Style) error {
	s.elements = append(s.elements, fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s/>`,
		x1, y1, x2, y2, shapeAttrs(style)))
	return nil
}

func (s *SVG) DrawText(x, y float64, text string, style diagram.Style) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<text x="%.2f" y="%.2f"`, x, y)
	if style.DY != "" {
		fmt.Fprintf(&b, ` dy="%s"`, escapeAttr(style.DY))
	}
	if style.Anchor != "" {
		fmt.Fprintf(&b, ` text-anchor="%s"`, escapeAttr(style.Anchor))
	}
	if style.FontWeight != "" {
		fmt.Fprintf(&b, ` font-weight="%s"`, escapeAttr(style.FontWeight))
	}
	b.WriteString(shapeAttrs(diagram.Style{Class: style.Class, Fill: style.Fill}))
	b.WriteString(">")
	if err := xml.EscapeText(&b, []byte(text)); err != nil {
		return fmt.Errorf("failed to escape text: %w", err)
	}
	b.WriteString("</text>")
	s.elements = append(s.elements, b.String())
	return nil
}

// WriteTo writes the complete SVG document, with the drawn elements translated
// so the diagram origin sits in the middle of the canvas.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" class="chord-diagram">`,
		s.width, s.height, s.width, s.height)
	buf.WriteString("\n")
	if s.title != "" {
		buf.WriteString("  <title>")
		if err := xml.EscapeText(&buf, []byte(s.title)); err != nil {
			return 0, fmt.Errorf("failed to escape title: %w", err)
		}
		buf.WriteString("</title>\n")
	}
	fmt.Fprintf(&buf, `  <g transform="translate(%.2f, %.2f)">`, s.width/2, s.height/2)
	buf.WriteString("\n")
	for _, el := range s.elements {
		buf.WriteString("    ")
		buf.WriteString(el)
		buf.WriteString("\n")
	}
	buf.WriteString("  </g>\n</svg>\n")

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("failed to write svg: %w", err)
	}
	return int64(n), nil
}

// Bytes returns the SVG document
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = s.WriteTo(&buf)
	return buf.Bytes()
}

func shapeAttrs(style diagram.Style) string {
	var b strings.Builder
	if style.Class != "" {
		fmt.Fprintf(&b, ` class="%s"`, escapeAttr(style.Class))
	}
	if style.Fill != "" {
		fmt.Fprintf(&b, ` fill="%s"`, escapeAttr(style.Fill))
	}
	if style.Stroke != "" {
		fmt.Fprintf(&b, ` stroke="%s"`, escapeAttr(style.Stroke))
	}
	if style.StrokeWidth > 0 {
		fmt.Fprintf(&b, ` stroke-width="%g"`, style.StrokeWidth)
	}
	return b.String()
}

func escapeAttr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
