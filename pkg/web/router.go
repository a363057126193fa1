// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package web assembles the HTTP API surface.
package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
	"github.com/canonical/oaa-sync/internal/storage"
	"github.com/canonical/oaa-sync/internal/tracing"
	"github.com/canonical/oaa-sync/pkg/authentication"
	"github.com/canonical/oaa-sync/pkg/metrics"
	"github.com/canonical/oaa-sync/pkg/status"
	"github.com/canonical/oaa-sync/pkg/syncs"
)

func NewRouter(
	token string,
	authenticationEnabled bool,
	connectors map[string]syncs.ConnectorInterface,
	s storage.StorageInterface,
	jwtVerifier authentication.TokenVerifierInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
		middleware.RequestLogger(logging.NewLogFormatter(logger)), // LogFormatter will only work if logger is set to DEBUG level
	)

	router.Use(middlewares...)

	var authMiddleware *syncs.AuthMiddleware = nil
	if token != "" {
		authMiddleware = syncs.NewAuthMiddleware(token, tracer, logger)
	}

	syncRouter := router
	if authenticationEnabled {
		jwtAuthMiddleware := authentication.NewMiddleware(jwtVerifier, tracer, monitor, logger)
		syncRouter = syncRouter.With(jwtAuthMiddleware.Authenticate()).(*chi.Mux)
	}

	syncs.NewAPI(
		syncs.NewService(connectors, s, tracer, monitor, logger),
		authMiddleware,
		tracer,
		monitor,
		logger).RegisterEndpoints(syncRouter)
	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
