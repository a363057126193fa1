// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
)

var _ TokenVerifierInterface = (*NoopVerifier)(nil)

type NoopVerifier struct{}

// NewNoopVerifier returns a no-op token verifier that allows all requests.
func NewNoopVerifier() *NoopVerifier {
	return &NoopVerifier{}
}

// VerifyToken always authorizes.
func (n *NoopVerifier) VerifyToken(ctx context.Context, rawToken string) (bool, error) {
	return true, nil
}
