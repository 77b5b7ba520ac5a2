package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/progression-wheel/internal/theory"
	"github.com/gin-gonic/gin"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"engine": gin.H{
			"reference_keys": len(theory.ReferenceRing()),
			"patterns":       len(theory.CommonProgressions()),
		},
	})
}
