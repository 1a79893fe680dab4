package monitor

import (
	"context"

	"github.com/ObiAU/prospectpulse/internal/apperrors"
	"github.com/ObiAU/prospectpulse/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// MonitorBatch processes prospects strictly one at a time, in input order,
// pacing calls with the configured inter-prospect delay so upstream rate
// limits are respected. A failing prospect is recorded and never stops the
// rest of the batch; cancellation is honored between prospects.
func (s *Service) MonitorBatch(ctx context.Context, prospects []string, keywords []string) (*models.BatchResult, error) {
	if len(prospects) == 0 {
		return nil, apperrors.NewValidation("prospects", "must not be empty")
	}
	if len(keywords) == 0 {
		return nil, apperrors.NewValidation("keywords", "must not be empty")
	}

	runID := uuid.NewString()
	log := s.logger.With(zap.String("run_id", runID))
	log.Info("batch run started", zap.Int("prospects", len(prospects)))

	limiter := s.batchLimiter()

	items := make([]models.BatchItem, 0, len(prospects))
	summary := models.BatchSummary{Total: len(prospects)}

	for _, prospect := range prospects {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		} else if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := s.MonitorOne(ctx, prospect, keywords)
		if err != nil {
			log.Warn("prospect failed", zap.String("prospect", prospect), zap.Error(err))
			items = append(items, models.BatchItem{
				Success:  false,
				Prospect: prospect,
				Error:    err.Error(),
			})
			summary.Failed++
			continue
		}

		items = append(items, models.BatchItem{
			Success:  true,
			Prospect: prospect,
			Result:   result,
		})
		summary.Successful++
		if result.Analysis.Verdict.HasNews {
			summary.WithNews++
		}
	}

	log.Info("batch run finished",
		zap.Int("successful", summary.Successful),
		zap.Int("failed", summary.Failed),
		zap.Int("with_news", summary.WithNews),
	)

	return &models.BatchResult{RunID: runID, Items: items, Summary: summary}, nil
}

// batchLimiter spaces prospect calls by the configured delay. Burst 1 lets
// the first prospect start immediately. A zero delay (tests) disables pacing.
func (s *Service) batchLimiter() *rate.Limiter {
	if s.batchDelay <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(s.batchDelay), 1)
}
