// Package handler exposes the monitor pipeline over HTTP. Every response uses
// a uniform envelope distinguishing success from failure.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/ObiAU/prospectpulse/internal/apperrors"
	"github.com/ObiAU/prospectpulse/internal/models"
	"github.com/ObiAU/prospectpulse/internal/telemetry"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchProvider interface {
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
}

type AnalysisProvider interface {
	Analyze(ctx context.Context, prospect string, keywords []string, results []models.SearchResult) (*models.Analysis, error)
}

type MonitorService interface {
	MonitorOne(ctx context.Context, prospect string, keywords []string) (*models.MonitorResult, error)
	MonitorBatch(ctx context.Context, prospects []string, keywords []string) (*models.BatchResult, error)
}

// MonitorHandler handles the search, analyze and monitor endpoints.
type MonitorHandler struct {
	searcher SearchProvider
	analyzer AnalysisProvider
	monitor  MonitorService
	metrics  *telemetry.Metrics
	logger   *zap.Logger
}

func NewMonitorHandler(
	searcher SearchProvider,
	analyzer AnalysisProvider,
	monitor MonitorService,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
) *MonitorHandler {
	return &MonitorHandler{
		searcher: searcher,
		analyzer: analyzer,
		monitor:  monitor,
		metrics:  metrics,
		logger:   logger,
	}
}

type searchRequest struct {
	Query string `json:"query"`
}

type analyzeRequest struct {
	Prospect      string                `json:"prospect"`
	Keywords      []string              `json:"keywords"`
	SearchResults []models.SearchResult `json:"searchResults"`
}

type monitorRequest struct {
	Prospect string   `json:"prospect"`
	Keywords []string `json:"keywords"`
}

type batchRequest struct {
	Prospects []string `json:"prospects"`
	Keywords  []string `json:"keywords"`
}

// Search handles POST /api/search.
func (h *MonitorHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.NewValidation("body", "must be a JSON object"))
		return
	}

	resp, err := h.searcher.Search(c.Request.Context(), req.Query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, resp)
}

// Analyze handles POST /api/analyze.
func (h *MonitorHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.NewValidation("body", "must be a JSON object"))
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), req.Prospect, req.Keywords, req.SearchResults)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.countFallback(analysis)
	respondOK(c, analysis)
}

// MonitorOne handles POST /api/monitor.
func (h *MonitorHandler) MonitorOne(c *gin.Context) {
	var req monitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.NewValidation("body", "must be a JSON object"))
		return
	}

	result, err := h.monitor.MonitorOne(c.Request.Context(), req.Prospect, req.Keywords)
	if err != nil {
		h.countMonitorRun("failure")
		h.respondError(c, err)
		return
	}

	h.countMonitorRun("success")
	h.countFallback(&result.Analysis)
	respondOK(c, result)
}

// MonitorBatch handles POST /api/monitor/batch.
func (h *MonitorHandler) MonitorBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.NewValidation("body", "must be a JSON object"))
		return
	}

	result, err := h.monitor.MonitorBatch(c.Request.Context(), req.Prospects, req.Keywords)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.BatchProspects.WithLabelValues("success").Add(float64(result.Summary.Successful))
		h.metrics.BatchProspects.WithLabelValues("failure").Add(float64(result.Summary.Failed))
	}

	respondOK(c, result)
}

func (h *MonitorHandler) countMonitorRun(outcome string) {
	if h.metrics != nil {
		h.metrics.MonitorRuns.WithLabelValues(outcome).Inc()
	}
}

func (h *MonitorHandler) countFallback(analysis *models.Analysis) {
	if h.metrics != nil && analysis.Source == models.SourceFallback {
		h.metrics.FallbackVerdicts.Inc()
	}
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// respondError maps the error taxonomy to HTTP status codes: caller mistakes
// are 400, missing credentials 503, upstream failures 502.
func (h *MonitorHandler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func statusFor(err error) int {
	var validationErr *apperrors.ValidationError
	var configErr *apperrors.ConfigurationError
	var upstreamErr *apperrors.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &configErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
