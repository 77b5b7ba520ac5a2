package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Conceptual-Machines/progression-wheel/internal/diagram"
	"github.com/Conceptual-Machines/progression-wheel/internal/render"
	"github.com/Conceptual-Machines/progression-wheel/internal/theory"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatSVG  = "svg"
	formatPNG  = "png"
	formatJSON = "json"
)

// progressionFile is the YAML form accepted by render -f
type progressionFile struct {
	diagram.Progression `yaml:",inline"`
	Width               float64 `yaml:"width"`
	Height              float64 `yaml:"height"`
	Strict              bool    `yaml:"strict"`
}

type renderOptions struct {
	chords      []string
	pattern     string
	fromPattern bool
	format      string
	output      string
	file        string
	width       float64
	height      float64
	strict      bool
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a progression diagram",
		Long: `Renders a chord progression as an SVG, PNG or JSON diagram.

Chords come from --chords, from a YAML file given with -f, or from the pattern's
numerals with --from-pattern. Flags override values read from the file.`,
		Example: `  progviz render --chords C,Am,F,G --pattern I-vi-IV-V -o fifties.svg
  progviz render -f progression.yaml --format png -o progression.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&opts.chords, "chords", nil, "Comma separated chord labels in playing order")
	flags.StringVar(&opts.pattern, "pattern", "", "Roman numeral pattern, e.g. I-V-vi-IV")
	flags.BoolVar(&opts.fromPattern, "from-pattern", false, "Use the pattern's numerals as chords when none are given")
	flags.StringVar(&opts.format, "format", formatSVG, "Output format: svg, png or json")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file (default stdout)")
	flags.StringVarP(&opts.file, "file", "f", "", "YAML file with chords and pattern")
	flags.Float64Var(&opts.width, "width", 0, "Diagram width (default from DIAGRAM_WIDTH)")
	flags.Float64Var(&opts.height, "height", 0, "Diagram height (default from DIAGRAM_HEIGHT)")
	flags.BoolVar(&opts.strict, "strict", false, "Classify chords by parsing the symbol instead of the substring rule")

	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	switch opts.format {
	case formatSVG, formatPNG, formatJSON:
	default:
		return fmt.Errorf("unknown format %q (want svg, png or json)", opts.format)
	}

	input, err := resolveProgression(cmd, opts)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	dims := diagram.Dimensions{Width: input.Width, Height: input.Height}.Sanitize(cfg.DiagramDefaults())
	renderOpts := cfg.RenderOptions(dims, input.Strict)

	// One render feeds every format; image backends replay the recorded calls
	rec := diagram.NewRecorder()
	result, err := diagram.Render(rec, input.Progression, renderOpts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch opts.format {
	case formatSVG:
		svg := render.NewSVG(dims)
		svg.SetTitle(result.Title)
		if err := replay(rec, result, svg); err != nil {
			return err
		}
		if _, err := svg.WriteTo(&buf); err != nil {
			return err
		}
	case formatPNG:
		raster := render.NewRaster(dims, cfg.RasterScale)
		if err := replay(rec, result, raster); err != nil {
			return err
		}
		if err := raster.EncodePNG(&buf); err != nil {
			return err
		}
	case formatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			*diagram.Result
			Ops []diagram.Op `json:"ops"`
		}{result, rec.Ops()}); err != nil {
			return fmt.Errorf("failed to encode diagram: %w", err)
		}
	}

	return writeOutput(cmd.OutOrStdout(), opts.output, buf.Bytes())
}

// resolveProgression merges the YAML file, if any, with the command line flags
func resolveProgression(cmd *cobra.Command, opts *renderOptions) (progressionFile, error) {
	var input progressionFile
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return input, fmt.Errorf("failed to read %s: %w", opts.file, err)
		}
		if err := yaml.Unmarshal(data, &input); err != nil {
			return input, fmt.Errorf("failed to parse %s: %w", opts.file, err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("chords") {
		input.Chords = opts.chords
	}
	if flags.Changed("pattern") {
		input.Pattern = opts.pattern
	}
	if flags.Changed("width") {
		input.Width = opts.width
	}
	if flags.Changed("height") {
		input.Height = opts.height
	}
	if flags.Changed("strict") {
		input.Strict = opts.strict
	}
	if len(input.Chords) == 0 && opts.fromPattern {
		input.Chords = theory.PatternChords(input.Pattern)
	}
	return input, nil
}

// replay copies the recorded diagram onto an image surface, drawing the
// placeholder for an empty progression
func replay(rec *diagram.Recorder, result *diagram.Result, surface diagram.Surface) error {
	if err := rec.Replay(surface); err != nil {
		return fmt.Errorf("failed to draw diagram: %w", err)
	}
	if result.Empty {
		return diagram.DrawPlaceholder(surface)
	}
	return nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
