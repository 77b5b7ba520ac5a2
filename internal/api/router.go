package api

import (
	"github.com/Conceptual-Machines/progression-wheel/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/progression-wheel/internal/api/middleware"
	"github.com/Conceptual-Machines/progression-wheel/internal/config"
	"github.com/Conceptual-Machines/progression-wheel/internal/metrics"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the diagram API. cloudwatch may be nil.
func SetupRouter(cfg *config.Config, version string, cloudwatch *metrics.Client) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cloudwatch))

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.AllowedOrigins))

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// Metrics endpoint
	stats := &handlers.RenderStats{}
	metricsHandler := handlers.NewMetricsHandler(version, stats)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	v1 := router.Group("/api/v1")
	{
		// Reference data
		v1.GET("/progressions", handlers.ListProgressions)
		v1.GET("/explanations", handlers.GetExplanation)

		// Diagram rendering
		diagramHandler := handlers.NewDiagramHandler(cfg, cloudwatch, stats)
		v1.POST("/diagrams", diagramHandler.Render)
		v1.POST("/diagrams/svg", diagramHandler.RenderSVG)
		v1.POST("/diagrams/png", diagramHandler.RenderPNG)
	}

	return router
}
