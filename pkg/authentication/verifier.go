// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
	"github.com/canonical/oaa-sync/internal/tracing"
)

var _ TokenVerifierInterface = (*JWTVerifier)(nil)

type JWTVerifier struct {
	verifier *oidc.IDTokenVerifier

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *JWTVerifier) VerifyToken(ctx context.Context, rawToken string) (bool, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.JWTVerifier.VerifyToken")
	defer span.End()

	if _, err := v.verifier.Verify(ctx, rawToken); err != nil {
		return false, err
	}

	return true, nil
}

func NewJWTVerifier(provider ProviderInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *JWTVerifier {
	v := &JWTVerifier{
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}

	// Skip audience validation, tokens are issued for machine callers
	config := &oidc.Config{
		SkipClientIDCheck: true,
		SkipIssuerCheck:   false,
	}

	v.verifier = provider.Verifier(config)

	return v
}

// NewJWTVerifierDirect wraps a prebuilt verifier, used with a manual JWKS URL.
func NewJWTVerifierDirect(verifier *oidc.IDTokenVerifier, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *JWTVerifier {
	return &JWTVerifier{
		verifier: verifier,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
