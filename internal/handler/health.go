package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service liveness and which credentials are present.
// Introspection only; no outbound calls.
type HealthHandler struct {
	searchConfigured   bool
	analysisConfigured bool
}

func NewHealthHandler(searchConfigured, analysisConfigured bool) *HealthHandler {
	return &HealthHandler{
		searchConfigured:   searchConfigured,
		analysisConfigured: analysisConfigured,
	}
}

// HealthCheck handles GET /health.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"credentialsConfigured": gin.H{
			"search":   h.searchConfigured,
			"analysis": h.analysisConfigured,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
