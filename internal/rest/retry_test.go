// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package rest

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastPolicy(maxAttempts int) *RetryPolicy {
	p := NewRetryPolicy(maxAttempts)
	p.InitialDelay = time.Millisecond
	p.MaxDelay = 5 * time.Millisecond
	return p
}

func TestRetryPolicyTransientThenSuccess(t *testing.T) {
	tests := []struct {
		name        string
		failures    int
		maxAttempts int
	}{
		{name: "no failures", failures: 0, maxAttempts: 5},
		{name: "one failure", failures: 1, maxAttempts: 5},
		{name: "failures just under budget", failures: 4, maxAttempts: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := fastPolicy(tt.maxAttempts).Execute(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return &TransientError{Status: 503, Err: errors.New("unavailable")}
				}
				return nil
			})

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if calls != tt.failures+1 {
				t.Fatalf("expected %d calls, got %d", tt.failures+1, calls)
			}
		})
	}
}

func TestRetryPolicyExhaustion(t *testing.T) {
	maxAttempts := 5
	calls := 0

	err := fastPolicy(maxAttempts).Execute(context.Background(), func() error {
		calls++
		return &TransientError{Status: 429, Err: errors.New("rate limited")}
	})

	if calls != maxAttempts {
		t.Fatalf("expected exactly %d calls, got %d", maxAttempts, calls)
	}

	var exhausted *RetryExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected RetryExhaustedError, got %T: %v", err, err)
	}
	if exhausted.Attempts != maxAttempts {
		t.Fatalf("expected %d attempts recorded, got %d", maxAttempts, exhausted.Attempts)
	}
	if exhausted.LastStatus != 429 {
		t.Fatalf("expected last status 429, got %d", exhausted.LastStatus)
	}
}

func TestRetryPolicyTerminalErrorSingleAttempt(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "unauthorized", err: &HTTPError{Status: 401, Body: "unauthorized"}},
		{name: "forbidden", err: &HTTPError{Status: 403, Body: "forbidden"}},
		{name: "not found", err: &HTTPError{Status: 404, Body: "not found"}},
		{name: "malformed payload", err: &DataIntegrityError{Err: errors.New("unexpected EOF")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := fastPolicy(5).Execute(context.Background(), func() error {
				calls++
				return tt.err
			})

			if calls != 1 {
				t.Fatalf("expected exactly 1 call, got %d", calls)
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected original error, got %v", err)
			}
		})
	}
}

func TestRetryPolicyContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := NewRetryPolicy(5)
	p.InitialDelay = time.Minute

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- p.Execute(ctx, func() error {
			calls++
			return &TransientError{Status: 500, Err: errors.New("boom")}
		})
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("retry did not honor context cancellation")
	}
}
