package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/progression-wheel/internal/diagram"
)

// Config holds the application configuration
// Note: This is a stateless service - no database or auth secrets needed
type Config struct {
	// Environment
	Environment string
	Port        string

	// Diagram defaults, used when a request omits or sends unusable dimensions
	DiagramWidth  float64
	DiagramHeight float64
	MinRadius     float64

	// PNG supersampling factor
	RasterScale int

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// CORS
	AllowedOrigins []string
}

// maxRasterScale caps PNG supersampling; render.NewRaster also bounds the canvas
const maxRasterScale = 4

func Load() *Config {
	return &Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		Port:           getEnv("PORT", "8080"),
		DiagramWidth:   getFloat("DIAGRAM_WIDTH", diagram.DefaultWidth),
		DiagramHeight:  getFloat("DIAGRAM_HEIGHT", diagram.DefaultHeight),
		MinRadius:      getFloat("MIN_RADIUS", diagram.DefaultMinRadius),
		RasterScale:    min(getInt("RASTER_SCALE", 2), maxRasterScale),
		SentryDSN:      getEnv("SENTRY_DSN", ""),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		log.Printf("⚠️  Ignoring invalid %s=%q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return f
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil || i <= 0 {
		log.Printf("⚠️  Ignoring invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return i
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DiagramDefaults returns the fallback drawing area for renders
func (c *Config) DiagramDefaults() diagram.Dimensions {
	return diagram.Dimensions{Width: c.DiagramWidth, Height: c.DiagramHeight}
}

// RenderOptions builds diagram options for a request, filling in the configured defaults
func (c *Config) RenderOptions(dims diagram.Dimensions, strict bool) diagram.Options {
	return diagram.Options{
		Dimensions:    dims,
		Defaults:      c.DiagramDefaults(),
		MinRadius:     c.MinRadius,
		StrictQuality: strict,
	}
}
