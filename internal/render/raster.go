package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/progression-wheel/internal/diagram"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultScale is the supersampling factor used by NewRaster when scale < 1
	DefaultScale = 2
	// MaxCanvasSide bounds each side of the supersampled canvas. NewRaster clamps
	// the output size and lowers the scale to stay within it.
	MaxCanvasSide = 4096
)

var (
	defaultInk = colorful.Color{R: 0, G: 0, B: 0}
	paper      = colorful.Color{R: 1, G: 1, B: 1}

	// basicfont only covers Latin-1
	glyphFallback = strings.NewReplacer("♯", "#", "♭", "b")
)

// Raster is a diagram.Surface that paints into an RGBA image. Drawing happens at
// scale times the output size and Image downsamples, which smooths the edges.
type Raster struct {
	canvas *image.RGBA
	width  int
	height int
	scale  int
	face   font.Face
}

// NewRaster creates a raster surface of the given output size
func NewRaster(dims diagram.Dimensions, scale int) *Raster {
	dims = dims.Sanitize(diagram.Dimensions{})
	if scale < 1 {
		scale = DefaultScale
	}
	w := min(max(int(math.Round(dims.Width)), 1), MaxCanvasSide)
	h := min(max(int(math.Round(dims.Height)), 1), MaxCanvasSide)
	scale = min(scale, max(MaxCanvasSide/max(w, h), 1))

	r := &Raster{
		canvas: image.NewRGBA(image.Rect(0, 0, w*scale, h*scale)),
		width:  w,
		height: h,
		scale:  scale,
		face:   basicfont.Face7x13,
	}
	_ = r.Clear()
	return r
}

func (r *Raster) Clear() error {
	draw.Draw(r.canvas, r.canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return nil
}

// toCanvas maps centred diagram coordinates to supersampled pixel coordinates
func (r *Raster) toCanvas(x, y float64) (float64, float64) {
	s := float64(r.scale)
	return (x + float64(r.width)/2) * s, (y + float64(r.height)/2) * s
}

func (r *Raster) DrawCircle(cx, cy, radius float64, style diagram.Style) error {
	fill, hasFill, err := parseColor(style.Fill, false)
	if err != nil {
		return err
	}
	stroke, hasStroke, err := parseColor(style.Stroke, false)
	if err != nil {
		return err
	}

	s := float64(r.scale)
	px, py := r.toCanvas(cx, cy)
	pr := radius * s
	half := style.StrokeWidth * s / 2
	if hasStroke && half <= 0 {
		half = s / 2
	}

	outer := pr + half + 1
	r.scan(px-outer, py-outer, px+outer, py+outer, func(x, y float64) {
		d := math.Hypot(x-px, y-py)
		if hasFill {
			r.blend(x, y, fill, coverage(pr-d))
		}
		if hasStroke {
			r.blend(x, y, stroke, coverage(half-math.Abs(d-pr)))
		}
	})
	return nil
}

func (r *Raster) DrawLine(x1, y1, x2, y2 float64, style diagram.Style) error {
	stroke, ok, err := parseColor(style.Stroke, true)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	s := float64(r.scale)
	ax, ay := r.toCanvas(x1, y1)
	bx, by := r.toCanvas(x2, y2)
	half := math.Max(style.StrokeWidth, 1) * s / 2

	pad := half + 1
	r.scan(math.Min(ax, bx)-pad, math.Min(ay, by)-pad, math.Max(ax, bx)+pad, math.Max(ay, by)+pad, func(x, y float64) {
		r.blend(x, y, stroke, coverage(half-segmentDistance(x, y, ax, ay, bx, by)))
	})
	return nil
}

func (r *Raster) DrawText(x, y float64, text string, style diagram.Style) error {
	ink, ok, err := parseColor(style.Fill, true)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	text = glyphFallback.Replace(text)
	metrics := r.face.Metrics()
	lineHeight := float64(metrics.Height.Ceil())
	width := font.MeasureString(r.face, text).Ceil()
	if width == 0 {
		return nil
	}

	left := x
	switch style.Anchor {
	case "middle":
		left -= float64(width) / 2
	case "end":
		left -= float64(width)
	}
	baseline := y + emOffset(style.DY, lineHeight)
	top := baseline - float64(metrics.Ascent.Ceil())

	pad := 1
	if top+lineHeight+float64(pad) < -float64(r.height)/2 || top-float64(pad) > float64(r.height)/2 {
		return nil
	}

	// Only the columns of the label that can land on the canvas are rasterized
	from, to := visibleSpan(left-float64(pad), width+2*pad, r.width)
	if from >= to {
		return nil
	}

	// Glyphs are rasterized at 1x and enlarged to the canvas scale
	glyphs := image.NewRGBA(image.Rect(0, 0, to-from, int(lineHeight)+2*pad))
	drawer := &font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(toRGBA(ink)),
		Face: r.face,
		Dot:  fixed.P(pad-from, pad+metrics.Ascent.Ceil()),
	}
	drawer.DrawString(text)
	if style.FontWeight == "bold" {
		drawer.Dot = fixed.P(pad+1-from, pad+metrics.Ascent.Ceil())
		drawer.DrawString(text)
	}

	scaled := imaging.Resize(glyphs, glyphs.Bounds().Dx()*r.scale, glyphs.Bounds().Dy()*r.scale, imaging.NearestNeighbor)
	cx, cy := r.toCanvas(left-float64(pad)+float64(from), top-float64(pad))
	at := image.Pt(int(math.Round(cx)), int(math.Round(cy)))
	draw.Draw(r.canvas, scaled.Bounds().Add(at), scaled, image.Point{}, draw.Over)
	return nil
}

// visibleSpan returns the column range [from, to) of a span starting at left
// (centred coordinates) that falls inside a canvas of the given output width.
func visibleSpan(left float64, span, canvasWidth int) (from, to int) {
	half := float64(canvasWidth) / 2
	from = max(0, int(math.Floor(-half-left)))
	to = min(span, int(math.Ceil(half-left))+1)
	return from, to
}

// Image returns the diagram at its output size
func (r *Raster) Image() image.Image {
	if r.scale == 1 {
		return imaging.Clone(r.canvas)
	}
	return imaging.Resize(r.canvas, r.width, r.height, imaging.Lanczos)
}

// EncodePNG writes the diagram as a PNG
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := imaging.Encode(w, r.Image(), imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// scan calls fn for the centre of every canvas pixel inside the box
func (r *Raster) scan(minX, minY, maxX, maxY float64, fn func(x, y float64)) {
	b := r.canvas.Bounds()
	x0 := max(b.Min.X, int(math.Floor(minX)))
	y0 := max(b.Min.Y, int(math.Floor(minY)))
	x1 := min(b.Max.X, int(math.Ceil(maxX)))
	y1 := min(b.Max.Y, int(math.Ceil(maxY)))

	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			fn(float64(px)+0.5, float64(py)+0.5)
		}
	}
}

func (r *Raster) blend(x, y float64, c colorful.Color, cov float64) {
	if cov <= 0 {
		return
	}
	px, py := int(x), int(y)
	if cov >= 1 {
		r.canvas.SetRGBA(px, py, toRGBA(c))
		return
	}
	under, _ := colorful.MakeColor(r.canvas.RGBAAt(px, py))
	r.canvas.SetRGBA(px, py, toRGBA(under.BlendRgb(c, cov)))
}

// coverage turns a signed distance inside an edge into a 0..1 pixel coverage
func coverage(inside float64) float64 {
	return math.Max(0, math.Min(1, inside+0.5))
}

func segmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := math.Max(0, math.Min(1, ((px-ax)*dx+(py-ay)*dy)/lengthSq))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}

// emOffset converts an SVG-style dy ("0.35em" or "4") to pixels
func emOffset(dy string, lineHeight float64) float64 {
	if dy == "" {
		return 0
	}
	if v, ok := strings.CutSuffix(dy, "em"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f * lineHeight
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(dy, "px"), 64)
	if err != nil {
		return 0
	}
	return f
}

// parseColor reads a hex style colour. "none" and "" mean no paint unless
// fallbackInk is set, in which case "" paints with the default ink.
func parseColor(value string, fallbackInk bool) (colorful.Color, bool, error) {
	switch value {
	case "none":
		return colorful.Color{}, false, nil
	case "":
		return defaultInk, fallbackInk, nil
	case "white":
		return paper, true, nil
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return colorful.Color{}, false, fmt.Errorf("invalid color %q: %w", value, err)
	}
	return c, true, nil
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
