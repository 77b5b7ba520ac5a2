package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/progression-wheel/internal/config"
	"github.com/Conceptual-Machines/progression-wheel/internal/diagram"
	"github.com/Conceptual-Machines/progression-wheel/internal/logger"
	"github.com/Conceptual-Machines/progression-wheel/internal/metrics"
	"github.com/Conceptual-Machines/progression-wheel/internal/render"
	"github.com/Conceptual-Machines/progression-wheel/internal/theory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	formatJSON = "json"
	formatSVG  = "svg"
	formatPNG  = "png"

	// maxRequestBytes bounds a diagram request body
	maxRequestBytes = 64 << 10
)

// DiagramRequest is the body accepted by the diagram endpoints
type DiagramRequest struct {
	Chords  []string `json:"chords" binding:"max=64,dive,max=32"`
	Pattern string   `json:"pattern" binding:"max=128"`
	Width   float64  `json:"width" binding:"lte=4096"`
	Height  float64  `json:"height" binding:"lte=4096"`
	// Strict classifies chords with the structured parser instead of the substring rule
	Strict bool `json:"strict"`
	// FromPattern derives the chords from the pattern's numerals when Chords is empty
	FromPattern bool `json:"from_pattern"`
}

func (r DiagramRequest) progression() diagram.Progression {
	chords := r.Chords
	if len(chords) == 0 && r.FromPattern {
		chords = theory.PatternChords(r.Pattern)
	}
	return diagram.Progression{Chords: chords, Pattern: r.Pattern}
}

// DiagramResponse is the JSON rendering of a diagram
type DiagramResponse struct {
	ID string `json:"id"`
	*diagram.Result
	KnownPattern bool         `json:"known_pattern"`
	Ops          []diagram.Op `json:"ops"`
}

type DiagramHandler struct {
	cfg        *config.Config
	cloudwatch *metrics.Client
	sentry     *metrics.SentryMetrics
	stats      *RenderStats
}

func NewDiagramHandler(cfg *config.Config, cloudwatch *metrics.Client, stats *RenderStats) *DiagramHandler {
	return &DiagramHandler{
		cfg:        cfg,
		cloudwatch: cloudwatch,
		sentry:     metrics.NewSentryMetrics(),
		stats:      stats,
	}
}

// Render returns the layout, legend, explanation and draw operations as JSON
// POST /api/v1/diagrams
func (h *DiagramHandler) Render(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	start := time.Now()
	prog := req.progression()
	rec := diagram.NewRecorder()
	result, err := diagram.Render(rec, prog, h.cfg.RenderOptions(h.dimensions(req), req.Strict))
	h.observe(c, formatJSON, prog, time.Since(start), err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, DiagramResponse{
		ID:           uuid.New().String(),
		Result:       result,
		KnownPattern: theory.IsKnownPattern(prog.Pattern),
		Ops:          rec.Ops(),
	})
}

// RenderSVG returns the diagram as scalable-vector markup
// POST /api/v1/diagrams/svg
func (h *DiagramHandler) RenderSVG(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	start := time.Now()
	prog := req.progression()
	dims := h.dimensions(req)
	svg := render.NewSVG(dims)
	err := h.draw(svg, prog, dims, req.Strict, svg.SetTitle)
	h.observe(c, formatSVG, prog, time.Since(start), err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Data(http.StatusOK, "image/svg+xml", svg.Bytes())
}

// RenderPNG returns the diagram as a PNG image
// POST /api/v1/diagrams/png
func (h *DiagramHandler) RenderPNG(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	start := time.Now()
	prog := req.progression()
	dims := h.dimensions(req)
	raster := render.NewRaster(dims, h.cfg.RasterScale)

	var buf bytes.Buffer
	err := h.draw(raster, prog, dims, req.Strict, nil)
	if err == nil {
		err = raster.EncodePNG(&buf)
	}
	h.observe(c, formatPNG, prog, time.Since(start), err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// draw renders onto an image surface, falling back to the placeholder for an empty progression
func (h *DiagramHandler) draw(surface diagram.Surface, prog diagram.Progression, dims diagram.Dimensions, strict bool, setTitle func(string)) error {
	result, err := diagram.Render(surface, prog, h.cfg.RenderOptions(dims, strict))
	if err != nil {
		return err
	}
	if setTitle != nil {
		setTitle(result.Title)
	}
	if result.Empty {
		return diagram.DrawPlaceholder(surface)
	}
	return nil
}

func (h *DiagramHandler) bind(c *gin.Context) (DiagramRequest, bool) {
	var req DiagramRequest
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid diagram request", logger.Fields{
			"request_id": c.GetString("request_id"),
			"error":      err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	return req, true
}

func (h *DiagramHandler) dimensions(req DiagramRequest) diagram.Dimensions {
	return diagram.Dimensions{Width: req.Width, Height: req.Height}.Sanitize(h.cfg.DiagramDefaults())
}

func (h *DiagramHandler) observe(c *gin.Context, format string, prog diagram.Progression, duration time.Duration, err error) {
	known := theory.IsKnownPattern(prog.Pattern)
	h.stats.record(len(prog.Chords), known, err)

	sample := metrics.Render{
		Format:       format,
		Chords:       len(prog.Chords),
		KnownPattern: known,
		Duration:     duration,
		Err:          err,
	}
	h.sentry.RecordRender(c.Request.Context(), sample)
	if h.cloudwatch != nil {
		h.cloudwatch.RecordRender(sample)
	}

	if err != nil {
		return
	}
	logger.LogRenderRequest(c.Request.Context(), format, len(prog.Chords), prog.Pattern, duration, logger.Fields{
		"request_id": c.GetString("request_id"),
	})
}

func (h *DiagramHandler) fail(c *gin.Context, err error) {
	logger.Error("Diagram render failed", err, logger.WithContext(c))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":      fmt.Sprintf("failed to render diagram: %v", err),
		"request_id": c.GetString("request_id"),
	})
}
