package espn

import (
	"errors"
	"fmt"
	"net/http"
)

// previewLimit caps the raw-body excerpt carried by parse errors.
const previewLimit = 200

// UpstreamError is a non-2xx response from the upstream or proxy.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream request failed with status %d: %s", e.Status, e.Message)
}

// Retryable reports whether the status is worth another attempt.
func (e *UpstreamError) Retryable() bool {
	return e.Status == http.StatusRequestTimeout ||
		e.Status == http.StatusTooManyRequests ||
		e.Status >= http.StatusInternalServerError
}

// NetworkError is a connection-level failure: timeout, reset, DNS. Always
// retryable.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError is an invalid JSON body or malformed embedded payload. Terminal:
// retrying will not fix a bad document. Preview carries at most 200 chars of
// the raw body for diagnostics.
type ParseError struct {
	Err     error
	Preview string
}

func (e *ParseError) Error() string {
	if e.Preview != "" {
		return fmt.Sprintf("parse failure: %v (body: %s)", e.Err, e.Preview)
	}
	return fmt.Sprintf("parse failure: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsRetryable classifies an error for the retry policy: network failures
// always, upstream statuses only for 408/429/5xx, everything else terminal.
func IsRetryable(err error) bool {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return true
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Retryable()
	}
	return false
}

// preview truncates body for error reporting.
func preview(body []byte) string {
	if len(body) <= previewLimit {
		return string(body)
	}
	return string(body[:previewLimit])
}
