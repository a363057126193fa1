// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package syncs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
	"github.com/canonical/oaa-sync/internal/tracing"
	"github.com/canonical/oaa-sync/internal/types"
)

type API struct {
	service    ServiceInterface
	middleware *AuthMiddleware

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	if a.middleware != nil {
		mux = mux.With(a.middleware.AuthMiddleware).(*chi.Mux)
	}
	mux.Post("/api/v0/sync/{connector}", a.handleRunSync)
	mux.Get("/api/v0/sync/runs", a.handleListRuns)
}

func (a *API) handleRunSync(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	connector := chi.URLParam(r, "connector")

	result, err := a.service.RunSync(r.Context(), connector)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrUnknownConnector) {
			status = http.StatusNotFound
		}

		rr := types.Response{
			Status:  status,
			Message: err.Error(),
		}

		w.WriteHeader(status)
		json.NewEncoder(w).Encode(rr)

		return
	}

	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(
		types.Response{
			Data:    result,
			Message: "Sync completed",
			Status:  http.StatusOK,
		},
	)
}

func (a *API) handleListRuns(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	connector := r.URL.Query().Get("connector")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil || l < 1 {
			rr := types.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid limit parameter",
			}

			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(rr)

			return
		}
		limit = l
	}

	runs, err := a.service.ListRuns(r.Context(), connector, limit)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrNoRunHistory) {
			status = http.StatusServiceUnavailable
		}

		rr := types.Response{
			Status:  status,
			Message: err.Error(),
		}

		w.WriteHeader(status)
		json.NewEncoder(w).Encode(rr)

		return
	}

	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(
		types.Response{
			Data:    runs,
			Message: "List of sync runs",
			Status:  http.StatusOK,
		},
	)
}

func NewAPI(
	service ServiceInterface,
	middleware *AuthMiddleware,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	a := new(API)

	a.service = service
	if middleware != nil {
		a.middleware = middleware
	}

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
