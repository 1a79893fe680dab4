package monitor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ObiAU/prospectpulse/internal/apperrors"
	"github.com/ObiAU/prospectpulse/internal/models"
	"github.com/ObiAU/prospectpulse/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMonitorBatch_InputValidation(t *testing.T) {
	service := newTestService(&fakeSearcher{}, &fakeAnalyzer{})

	var validationErr *apperrors.ValidationError

	_, err := service.MonitorBatch(context.Background(), nil, []string{"funding"})
	require.ErrorAs(t, err, &validationErr)

	_, err = service.MonitorBatch(context.Background(), []string{"Acme"}, nil)
	require.ErrorAs(t, err, &validationErr)
}

func TestMonitorBatch_OneFailureNeverStopsTheBatch(t *testing.T) {
	analyzer := &fakeAnalyzer{failFor: map[string]error{
		"Globex": errors.New("analysis exploded"),
	}}
	service := newTestService(&fakeSearcher{}, analyzer)

	prospects := []string{"Acme", "Globex", "Initech", "Umbrella"}
	result, err := service.MonitorBatch(context.Background(), prospects, []string{"funding"})
	require.NoError(t, err)

	require.Len(t, result.Items, len(prospects))
	for i, item := range result.Items {
		assert.Equal(t, prospects[i], item.Prospect)
	}

	assert.True(t, result.Items[0].Success)
	assert.False(t, result.Items[1].Success)
	assert.Contains(t, result.Items[1].Error, "analysis exploded")
	assert.Nil(t, result.Items[1].Result)
	assert.True(t, result.Items[2].Success)
	assert.True(t, result.Items[3].Success)

	assert.Equal(t, models.BatchSummary{Total: 4, Successful: 3, Failed: 1, WithNews: 0}, result.Summary)
	assert.NotEmpty(t, result.RunID)
}

func TestMonitorBatch_CountsProspectsWithNews(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &models.Analysis{
		Verdict: models.AnalysisVerdict{
			Company:    "Acme",
			HasNews:    true,
			NewsType:   models.NewsTypeFunding,
			Urgency:    models.LevelHigh,
			Confidence: models.LevelHigh,
		},
		Source: models.SourceModel,
	}}
	service := newTestService(&fakeSearcher{}, analyzer)

	result, err := service.MonitorBatch(context.Background(), []string{"Acme", "Globex"}, []string{"funding"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Summary.WithNews)
}

func TestMonitorBatch_PacesSequentialCalls(t *testing.T) {
	delay := 50 * time.Millisecond
	service := monitor.NewService(&fakeSearcher{}, &fakeAnalyzer{}, nil, "2025", delay, zap.NewNop())

	start := time.Now()
	result, err := service.MonitorBatch(context.Background(), []string{"A", "B", "C"}, []string{"funding"})
	require.NoError(t, err)

	// First prospect starts immediately; the remaining two are spaced by the delay.
	assert.GreaterOrEqual(t, time.Since(start), 2*delay)
	assert.Len(t, result.Items, 3)
}

func TestMonitorBatch_CancellationStopsBeforeNextProspect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := newTestService(&fakeSearcher{}, &fakeAnalyzer{})

	_, err := service.MonitorBatch(ctx, []string{"Acme", "Globex"}, []string{"funding"})
	require.ErrorIs(t, err, context.Canceled)
}
