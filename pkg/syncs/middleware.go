// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package syncs

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/tracing"
)

// AuthMiddleware guards the sync endpoints with a static API token. It is
// meant for machine callers, interactive callers go through JWT.
type AuthMiddleware struct {
	token string

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func NewAuthMiddleware(token string, tracer tracing.TracingInterface, logger logging.LoggerInterface) *AuthMiddleware {
	m := new(AuthMiddleware)

	m.token = token
	m.tracer = tracer
	m.logger = logger

	return m
}

func (m *AuthMiddleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, span := m.tracer.Start(r.Context(), "syncs.AuthMiddleware.AuthMiddleware")
		defer span.End()

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(m.token)) != 1 {
			m.logger.Debug("rejected request with invalid api token")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
