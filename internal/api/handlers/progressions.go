package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/progression-wheel/internal/theory"
	"github.com/gin-gonic/gin"
)

// ListProgressions returns the catalog of common progressions
// GET /api/v1/progressions
func ListProgressions(c *gin.Context) {
	progressions := theory.CommonProgressions()
	c.JSON(http.StatusOK, gin.H{
		"progressions": progressions,
		"count":        len(progressions),
	})
}

// GetExplanation returns the explanation text for a pattern
// GET /api/v1/explanations?pattern=I-IV-V
func GetExplanation(c *gin.Context) {
	pattern := c.Query("pattern")
	explanation := theory.Explain(pattern)
	c.JSON(http.StatusOK, gin.H{
		"pattern":     pattern,
		"known":       theory.IsKnownPattern(pattern),
		"explanation": explanation,
	})
}
