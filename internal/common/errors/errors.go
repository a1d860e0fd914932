// Package errors provides the standardized error shape for the resource
// resolution layer. Every provider failure is normalized into a ProviderError
// before it leaves the client; callers never see transport-level error types.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Routing signals. Not failures: the pipeline falls through to the
	// next tier when it sees one of these.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	ErrCodeCacheMiss   ErrorCode = "CACHE_MISS"

	// Provider failures.
	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE" // network/5xx/429, retried then escalated
	ErrCodeProviderRejected    ErrorCode = "PROVIDER_REJECTED"    // 4xx other than 429, not retried
	ErrCodeMalformedResponse   ErrorCode = "MALFORMED_RESPONSE"   // undecodable payload, not retried

	// Offline corpus failures degrade to an empty result and are only logged.
	ErrCodeOfflineUnavailable ErrorCode = "OFFLINE_DATASET_UNAVAILABLE"
)

// ProviderError is the single error shape produced by the external client.
type ProviderError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Status    int       `json:"status,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ProviderError[%s] status=%d: %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("ProviderError[%s]: %s", e.Code, e.Message)
}

// NewRateLimited creates the routing signal returned when the request budget
// is exhausted.
func NewRateLimited(category string) *ProviderError {
	return &ProviderError{
		Code:      ErrCodeRateLimited,
		Message:   "request budget exhausted",
		Details:   fmt.Sprintf("category: %s", category),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheMiss creates the routing signal for an absent or expired entry.
func NewCacheMiss(key string) *ProviderError {
	return &ProviderError{
		Code:      ErrCodeCacheMiss,
		Message:   "no valid cache entry",
		Details:   fmt.Sprintf("key: %s", key),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderUnavailable creates a retryable provider error from a transport
// failure or a retryable HTTP status (408/429/5xx).
func NewProviderUnavailable(status int, err error) *ProviderError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &ProviderError{
		Code:      ErrCodeProviderUnavailable,
		Message:   "provider request failed",
		Details:   details,
		Status:    status,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderRejected creates a terminal provider error for 4xx responses
// other than 429.
func NewProviderRejected(status int, body string) *ProviderError {
	return &ProviderError{
		Code:      ErrCodeProviderRejected,
		Message:   "provider rejected request",
		Details:   body,
		Status:    status,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedResponse creates a terminal error for an undecodable provider
// payload.
func NewMalformedResponse(err error) *ProviderError {
	return &ProviderError{
		Code:      ErrCodeMalformedResponse,
		Message:   "provider response could not be decoded",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOfflineUnavailable creates the error logged when the offline corpus
// cannot be read. It is never propagated to resolution callers.
func NewOfflineUnavailable(path string, err error) *ProviderError {
	return &ProviderError{
		Code:      ErrCodeOfflineUnavailable,
		Message:   "offline dataset unavailable",
		Details:   fmt.Sprintf("path: %s, error: %v", path, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryable reports whether err is a ProviderError marked retryable.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// CodeOf returns the ErrorCode carried by err, or the empty code when err is
// not a ProviderError.
func CodeOf(err error) ErrorCode {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
