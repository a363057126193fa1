// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package syncs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
	"github.com/canonical/oaa-sync/internal/tracing"
	"github.com/canonical/oaa-sync/internal/types"
)

type fakeService struct {
	runSync  func(ctx context.Context, connector string) (*types.SyncResult, error)
	listRuns func(ctx context.Context, connector string, limit int) ([]types.SyncRun, error)
}

func (f *fakeService) RunSync(ctx context.Context, connector string) (*types.SyncResult, error) {
	return f.runSync(ctx, connector)
}

func (f *fakeService) ListRuns(ctx context.Context, connector string, limit int) ([]types.SyncRun, error) {
	return f.listRuns(ctx, connector, limit)
}

func newTestAPI(service ServiceInterface, middleware *AuthMiddleware) *chi.Mux {
	api := NewAPI(
		service,
		middleware,
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor(),
		logging.NewLogger("error"),
	)

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	return mux
}

func TestHandleRunSync(t *testing.T) {
	service := &fakeService{
		runSync: func(ctx context.Context, connector string) (*types.SyncResult, error) {
			if connector != "workboard" {
				t.Fatalf("unexpected connector %q", connector)
			}
			return &types.SyncResult{Connector: connector, Users: 42, Groups: 3}, nil
		},
	}

	mux := newTestAPI(service, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v0/sync/workboard", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp struct {
		Data    types.SyncResult `json:"data"`
		Message string           `json:"message"`
		Status  int              `json:"status"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Data.Users != 42 || resp.Data.Groups != 3 {
		t.Fatalf("unexpected result: %+v", resp.Data)
	}
}

func TestHandleRunSyncUnknownConnector(t *testing.T) {
	service := &fakeService{
		runSync: func(ctx context.Context, connector string) (*types.SyncResult, error) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownConnector, connector)
		},
	}

	mux := newTestAPI(service, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v0/sync/bogus", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestHandleListRuns(t *testing.T) {
	now := time.Now().UTC()
	service := &fakeService{
		listRuns: func(ctx context.Context, connector string, limit int) ([]types.SyncRun, error) {
			if connector != "sailpoint" {
				t.Fatalf("unexpected connector filter %q", connector)
			}
			if limit != 5 {
				t.Fatalf("unexpected limit %d", limit)
			}
			return []types.SyncRun{
				{ID: "run-1", Connector: "sailpoint", Status: types.RunStatusSucceeded, Users: 10, StartedAt: now},
			}, nil
		},
	}

	mux := newTestAPI(service, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/sync/runs?connector=sailpoint&limit=5", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp struct {
		Data []types.SyncRun `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Data) != 1 || resp.Data[0].ID != "run-1" {
		t.Fatalf("unexpected runs: %+v", resp.Data)
	}
}

func TestHandleListRunsInvalidLimit(t *testing.T) {
	service := &fakeService{
		listRuns: func(ctx context.Context, connector string, limit int) ([]types.SyncRun, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	mux := newTestAPI(service, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/sync/runs?limit=zero", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestHandleListRunsWithoutStorage(t *testing.T) {
	service := NewService(
		map[string]ConnectorInterface{},
		nil,
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor(),
		logging.NewLogger("error"),
	)

	mux := newTestAPI(service, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/sync/runs", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rr.Code)
	}
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	service := &fakeService{
		runSync: func(ctx context.Context, connector string) (*types.SyncResult, error) {
			return &types.SyncResult{Connector: connector}, nil
		},
	}

	middleware := NewAuthMiddleware("s3cret", tracing.NewNoopTracer(), logging.NewLogger("error"))
	mux := newTestAPI(service, middleware)

	req := httptest.NewRequest(http.MethodPost, "/api/v0/sync/workboard", nil)
	req.Header.Set("Authorization", "Bearer wrong")

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v0/sync/workboard", nil)
	req.Header.Set("Authorization", "Bearer s3cret")

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}
