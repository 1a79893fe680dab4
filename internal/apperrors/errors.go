// Package apperrors defines the error taxonomy shared by the adapters and the
// HTTP boundary: caller mistakes, missing credentials, and upstream failures.
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ValidationError reports missing or malformed caller input. Surfaced
// immediately, never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for the given field.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConfigurationError reports a missing provider credential. Operator-fixable;
// surfaced per-call rather than aborting startup.
type ConfigurationError struct {
	Credential string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Credential)
}

// NewConfiguration builds a ConfigurationError for the given credential name.
func NewConfiguration(credential string) error {
	return &ConfigurationError{Credential: credential}
}

// UpstreamError reports a non-success response from an external provider,
// carrying the upstream status and body text. No automatic retry.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
	Timeout    bool
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s request timed out", e.Provider)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s request failed", e.Provider)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstream wraps a transport-level failure, flagging timeouts so callers
// can treat expiry as the timeout subtype.
func NewUpstream(provider string, err error) error {
	return &UpstreamError{Provider: provider, Timeout: isTimeout(err), Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
