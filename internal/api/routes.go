package api

import (
	"github.com/ObiAU/prospectpulse/internal/handler"
	"github.com/ObiAU/prospectpulse/internal/telemetry"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all API routes on the engine.
func SetupRoutes(
	router *gin.Engine,
	monitorHandler *handler.MonitorHandler,
	healthHandler *handler.HealthHandler,
	metrics *telemetry.Metrics,
) {
	router.Use(metrics.Middleware())

	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := router.Group("/api")
	apiGroup.POST("/search", monitorHandler.Search)
	apiGroup.POST("/analyze", monitorHandler.Analyze)
	apiGroup.POST("/monitor", monitorHandler.MonitorOne)
	apiGroup.POST("/monitor/batch", monitorHandler.MonitorBatch)
}
