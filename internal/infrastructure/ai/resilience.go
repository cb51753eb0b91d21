package ai

import (
	"context"
	"errors"

	"github.com/docuintel/docuintel/internal/infrastructure/resilience"
)

// isDegradable reports whether a failed call should collapse into its fixed
// fallback value. Status and decode errors mean the service answered badly;
// everything else means the transport is down and the failure propagates.
func isDegradable(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return true
	}
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}

// classifyAIError feeds the circuit breaker. Retryable is always false:
// every AI call gets a single attempt.
func classifyAIError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if isDegradable(err) {
		// The service is reachable; its bad answers should not trip the
		// breaker open and mask future calls behind hard failures.
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}
