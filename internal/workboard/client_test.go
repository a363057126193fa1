// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
	"github.com/canonical/oaa-sync/internal/rest"
	"github.com/canonical/oaa-sync/internal/tracing"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	logger := logging.NewLogger("error")
	restClient := rest.NewClient(rest.NewConfig(5*time.Second, 3, false, logger))

	c, err := NewClient(NewConfig(baseURL, "token-123", 2), restClient, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logger)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return c
}

func envelope(success bool, message string, data any) map[string]any {
	return map[string]any{"success": success, "message": message, "data": data}
}

func TestNewClientMissingConfig(t *testing.T) {
	logger := logging.NewLogger("error")
	restClient := rest.NewClient(rest.NewConfig(time.Second, 1, false, logger))

	if _, err := NewClient(NewConfig("", "token", 0), restClient, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logger); err == nil {
		t.Fatal("expected error for missing base url")
	}
	if _, err := NewClient(NewConfig("https://workboard.example.com", "", 0), restClient, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logger); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestGetCurrentUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wb/apis/user" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
			t.Errorf("unexpected authorization header %q", got)
		}

		json.NewEncoder(w).Encode(envelope(true, "", map[string]any{
			"user": map[string]any{
				"user_id":    12345,
				"email":      "alice@example.com",
				"first_name": "Alice",
				"last_name":  "Doe",
			},
		}))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	user, err := c.GetCurrentUser(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.UserID != "12345" {
		t.Fatalf("expected numeric user_id to decode as string, got %q", user.UserID)
	}
	if user.FullName() != "Alice Doe" {
		t.Fatalf("unexpected full name %q", user.FullName())
	}
}

func TestListUsersPagination(t *testing.T) {
	pages := map[string]struct {
		users      []map[string]any
		nextCursor string
	}{
		"": {
			users: []map[string]any{
				{"user_id": "u1", "email": "u1@example.com"},
				{"user_id": "u2", "email": "u2@example.com"},
			},
			nextCursor: "c2",
		},
		"c2": {
			users: []map[string]any{
				{"user_id": "u3", "email": "u3@example.com"},
				{"user_id": "u4", "email": "u4@example.com"},
			},
			nextCursor: "c3",
		},
		"c3": {
			users: []map[string]any{
				{"user_id": "u5", "email": "u5@example.com"},
			},
			nextCursor: "",
		},
	}

	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if got := r.URL.Query().Get("limit"); got != "2" {
			t.Errorf("unexpected limit %q", got)
		}

		page, ok := pages[r.URL.Query().Get("cursor")]
		if !ok {
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("cursor"))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		json.NewEncoder(w).Encode(envelope(true, "", map[string]any{
			"users":       page.users,
			"next_cursor": page.nextCursor,
		}))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	users, err := c.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(users) != 5 {
		t.Fatalf("expected 5 users, got %d", len(users))
	}
	if requests != 3 {
		t.Fatalf("expected 3 requests, got %d", requests)
	}
	if users[0].UserID != "u1" || users[4].UserID != "u5" {
		t.Fatalf("users are out of order: %v", users)
	}
}

func TestListUsersEnvelopeFailure(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(envelope(false, "invalid token", nil))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.ListUsers(context.Background())

	apiErr := new(APIError)
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "invalid token" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
	if requests != 1 {
		t.Fatalf("envelope failures must not be retried, got %d requests", requests)
	}
}

func TestListUsersRetriesTransientFailures(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(envelope(true, "", map[string]any{
			"users":       []map[string]any{{"user_id": "u1"}},
			"next_cursor": "",
		}))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	users, err := c.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if requests != 2 {
		t.Fatalf("expected a retry after 503, got %d requests", requests)
	}
}

func TestIDUnmarshal(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		want ID
	}{
		{`"abc"`, "abc"},
		{`42`, "42"},
		{`42.0`, "42.0"},
	} {
		var id ID
		if err := json.Unmarshal([]byte(tc.raw), &id); err != nil {
			t.Fatalf("failed to unmarshal %s: %v", tc.raw, err)
		}
		if id != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, id)
		}
	}

	var id ID
	if err := json.Unmarshal([]byte(`{"x":1}`), &id); err == nil {
		t.Fatal("expected error for object id")
	}
}
