package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidation("query", "must not be empty")

	assert.EqualError(t, err, "invalid query: must not be empty")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "query", validationErr.Field)
}

func TestConfigurationError(t *testing.T) {
	err := NewConfiguration("search API key")

	assert.EqualError(t, err, "search API key is not configured")
}

func TestUpstreamError_StatusMessage(t *testing.T) {
	err := &UpstreamError{Provider: "brave search", StatusCode: 429, Body: "rate limited"}

	assert.EqualError(t, err, "brave search returned status 429: rate limited")
}

func TestNewUpstream_FlagsTimeouts(t *testing.T) {
	err := NewUpstream("openai", context.DeadlineExceeded)

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.True(t, upstreamErr.Timeout)
	assert.EqualError(t, err, "openai request timed out")
}

func TestUpstreamError_SurvivesWrapping(t *testing.T) {
	inner := &UpstreamError{Provider: "brave search", StatusCode: 500, Body: "boom"}
	wrapped := fmt.Errorf("search for Acme: %w", inner)

	var upstreamErr *UpstreamError
	require.ErrorAs(t, wrapped, &upstreamErr)
	assert.Equal(t, 500, upstreamErr.StatusCode)
}

func TestNewUpstream_PlainError(t *testing.T) {
	err := NewUpstream("openai", errors.New("connection refused"))

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.False(t, upstreamErr.Timeout)
	assert.ErrorContains(t, err, "connection refused")
}
