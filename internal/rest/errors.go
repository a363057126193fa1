// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package rest

import (
	"errors"
	"fmt"
	"net"
)

// TransientError marks a failure the retry policy is allowed to retry:
// network timeouts, HTTP 429 and HTTP 5xx responses.
type TransientError struct {
	Status int
	Err    error
}

func (e *TransientError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("transient http error (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("transient network error: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// HTTPError is a terminal, non-retryable HTTP failure (4xx other than 429).
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error (status %d): %s", e.Status, e.Body)
}

// RetryExhaustedError is returned once the bounded attempt count is spent.
// It carries the last observed failure.
type RetryExhaustedError struct {
	Attempts   int
	LastStatus int
	Err        error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempts (last status %d): %v", e.Attempts, e.LastStatus, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}

// DataIntegrityError marks a successful response with a malformed payload.
// It aborts the whole fetch, there is no partial-success commit.
type DataIntegrityError struct {
	Err error
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("malformed response payload: %v", e.Err)
}

func (e *DataIntegrityError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err may be retried.
func IsTransient(err error) bool {
	var transient *TransientError
	if errors.As(err, &transient) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}

// IsRetryableStatus classifies an HTTP status code for the retry policy.
func IsRetryableStatus(status int) bool {
	return status == 429 || status >= 500
}
