// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
	"github.com/canonical/oaa-sync/internal/tracing"
	"github.com/canonical/oaa-sync/internal/types"
	"github.com/canonical/oaa-sync/pkg/authentication"
	"github.com/canonical/oaa-sync/pkg/syncs"
)

type staticConnector struct {
	result *types.SyncResult
}

func (c *staticConnector) Run(ctx context.Context) (*types.SyncResult, error) {
	return c.result, nil
}

func newTestRouter(token string, authenticationEnabled bool) http.Handler {
	connectors := map[string]syncs.ConnectorInterface{
		"workboard": &staticConnector{result: &types.SyncResult{Connector: "workboard", Users: 1}},
	}

	return NewRouter(
		token,
		authenticationEnabled,
		connectors,
		nil,
		authentication.NewNoopVerifier(),
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor(),
		logging.NewLogger("error"),
	)
}

func TestRouterStatusEndpoint(t *testing.T) {
	router := newTestRouter("", false)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/status", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter("", false)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestRouterSyncEndpoint(t *testing.T) {
	router := newTestRouter("", false)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v0/sync/workboard", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestRouterSyncEndpointRequiresToken(t *testing.T) {
	router := newTestRouter("s3cret", false)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v0/sync/workboard", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v0/sync/workboard", nil)
	req.Header.Set("Authorization", "Bearer s3cret")

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	// The status endpoint stays unprotected.
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/status", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}
