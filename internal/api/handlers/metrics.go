package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// RenderStats counts renders served since startup. Safe for concurrent use.
type RenderStats struct {
	renders   atomic.Int64
	empty     atomic.Int64
	fallbacks atomic.Int64
	failures  atomic.Int64
}

func (s *RenderStats) record(chords int, knownPattern bool, err error) {
	if err != nil {
		s.failures.Add(1)
		return
	}
	s.renders.Add(1)
	if chords == 0 {
		s.empty.Add(1)
		return
	}
	if !knownPattern {
		s.fallbacks.Add(1)
	}
}

func (s *RenderStats) snapshot() map[string]interface{} {
	return map[string]interface{}{
		"renders":               s.renders.Load(),
		"empty_progressions":    s.empty.Load(),
		"fallback_explanations": s.fallbacks.Load(),
		"failures":              s.failures.Load(),
	}
}

type MetricsHandler struct {
	startTime time.Time
	version   string
	stats     *RenderStats
}

func NewMetricsHandler(version string, stats *RenderStats) *MetricsHandler {
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
		stats:     stats,
	}
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// formatUptime formats the uptime duration with seconds rounded to 2 decimal places
func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % secondsPerMinute
	seconds := d.Seconds() - float64(hours*secondsPerHour) - float64(minutes*secondsPerMinute)

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%.2fs", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%.2fs", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", seconds)
}

type MetricsResponse struct {
	Status    string                 `json:"status"`
	Uptime    string                 `json:"uptime"`
	Timestamp string                 `json:"timestamp"`
	Version   string                 `json:"version"`
	StartTime string                 `json:"start_time"`
	System    SystemMetrics          `json:"system"`
	Diagrams  map[string]interface{} `json:"diagrams"`
}

type SystemMetrics struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
	MemTotalMB   uint64 `json:"mem_total_mb"`
	NumGC        uint32 `json:"num_gc"`
}

const (
	bytesToMB = 1024 * 1024
)

func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	metrics := MetricsResponse{
		Status:    "healthy",
		Uptime:    formatUptime(uptime),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		StartTime: h.startTime.UTC().Format(time.RFC3339),
		System: SystemMetrics{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAllocMB:   m.Alloc / bytesToMB,
			MemTotalMB:   m.TotalAlloc / bytesToMB,
			NumGC:        m.NumGC,
		},
		Diagrams: h.stats.snapshot(),
	}

	c.JSON(http.StatusOK, metrics)
}
