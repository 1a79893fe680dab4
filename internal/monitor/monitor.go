// Package monitor composes the search and analysis providers into the
// single-prospect and batch monitoring pipelines.
package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ObiAU/prospectpulse/internal/apperrors"
	"github.com/ObiAU/prospectpulse/internal/models"
	"go.uber.org/zap"
)

// maxQueryKeywords bounds how many keywords join the search query.
const maxQueryKeywords = 4

type Searcher interface {
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, prospect string, keywords []string, results []models.SearchResult) (*models.Analysis, error)
}

// Alerter pushes a chat alert for a finished monitor result. Implementations
// decide whether the result warrants one.
type Alerter interface {
	Notify(ctx context.Context, result *models.MonitorResult)
}

type Service struct {
	searcher   Searcher
	analyzer   Analyzer
	alerter    Alerter
	queryYear  string
	batchDelay time.Duration
	logger     *zap.Logger
}

// NewService wires the monitor pipeline. alerter may be nil when no chat
// delivery is configured; a zero batchDelay disables pacing.
func NewService(searcher Searcher, analyzer Analyzer, alerter Alerter, queryYear string, batchDelay time.Duration, logger *zap.Logger) *Service {
	return &Service{
		searcher:   searcher,
		analyzer:   analyzer,
		alerter:    alerter,
		queryYear:  queryYear,
		batchDelay: batchDelay,
		logger:     logger,
	}
}

// MonitorOne runs search then analysis for a single prospect. The first
// sub-call failure surfaces immediately; there is no retry.
func (s *Service) MonitorOne(ctx context.Context, prospect string, keywords []string) (*models.MonitorResult, error) {
	if prospect == "" {
		return nil, apperrors.NewValidation("prospect", "must not be empty")
	}
	if len(keywords) == 0 {
		return nil, apperrors.NewValidation("keywords", "must not be empty")
	}

	query := s.buildSearchQuery(prospect, keywords)

	searchResp, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search for %s: %w", prospect, err)
	}

	analysis, err := s.analyzer.Analyze(ctx, prospect, keywords, searchResp.Results)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", prospect, err)
	}

	result := &models.MonitorResult{
		Prospect:      prospect,
		SearchResults: searchResp.Results,
		Analysis:      *analysis,
		Metadata: models.Metadata{
			SearchQuery:  query,
			TotalResults: searchResp.Total,
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
		},
	}

	s.logger.Info("prospect monitored",
		zap.String("prospect", prospect),
		zap.Int("results", searchResp.Total),
		zap.Bool("has_news", analysis.Verdict.HasNews),
		zap.String("analysis_source", analysis.Source),
	)

	if s.alerter != nil {
		go s.alerter.Notify(ctx, result)
	}

	return result, nil
}

// buildSearchQuery combines the quoted prospect name with a disjunction of at
// most the first four keywords and the year token, e.g.
// "Acme Corp" (funding OR launch) 2025.
func (s *Service) buildSearchQuery(prospect string, keywords []string) string {
	bounded := keywords
	if len(bounded) > maxQueryKeywords {
		bounded = bounded[:maxQueryKeywords]
	}

	return fmt.Sprintf(`"%s" (%s) %s`, prospect, strings.Join(bounded, " OR "), s.queryYear)
}
