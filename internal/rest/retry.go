// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package rest

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy retries transient failures with jittered exponential backoff,
// bounded by MaxAttempts. Terminal errors are returned immediately after a
// single attempt. It must only wrap idempotent calls.
type RetryPolicy struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	Multiplier      float64
	RandomizeFactor float64
}

// NewRetryPolicy creates a retry policy with exponential backoff defaults.
func NewRetryPolicy(maxAttempts int) *RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryPolicy{
		MaxAttempts:     maxAttempts,
		InitialDelay:    time.Second,
		MaxDelay:        30 * time.Second,
		Multiplier:      2.0,
		RandomizeFactor: 0.25,
	}
}

// Execute runs fn until it succeeds, fails terminally, or the attempt budget
// is exhausted. Only errors for which IsTransient holds are retried.
func (p *RetryPolicy) Execute(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		if !IsTransient(err) {
			return err
		}
		lastErr = err

		if attempt == p.MaxAttempts-1 {
			break
		}

		timer := time.NewTimer(p.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return &RetryExhaustedError{
		Attempts:   p.MaxAttempts,
		LastStatus: lastStatus(lastErr),
		Err:        lastErr,
	}
}

func (p *RetryPolicy) delay(attempt int) time.Duration {
	d := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt))
	if d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}

	if p.RandomizeFactor > 0 {
		delta := d * p.RandomizeFactor
		d = d - delta + rand.Float64()*2*delta
	}

	return time.Duration(d)
}

func lastStatus(err error) int {
	var transient *TransientError
	if errors.As(err, &transient) {
		return transient.Status
	}
	return 0
}
