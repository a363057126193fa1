// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sailpoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
	"github.com/canonical/oaa-sync/internal/rest"
	"github.com/canonical/oaa-sync/internal/tracing"
)

func newTestClient(t *testing.T, baseURL string, pageSize int) *Client {
	t.Helper()

	logger := logging.NewLogger("error")
	restClient := rest.NewClient(rest.NewConfig(5*time.Second, 3, false, logger))

	c, err := NewClient(
		NewConfig("acme", baseURL, "client-id", "client-secret", pageSize, "", ""),
		restClient,
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor(),
		logger,
	)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return c
}

func tokenHandler(t *testing.T, tokenRequests *int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*tokenRequests++

		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse token form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "client_credentials" {
			t.Errorf("unexpected grant_type %q", got)
		}
		if got := r.PostForm.Get("client_id"); got != "client-id" {
			t.Errorf("unexpected client_id %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "at-123",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}
}

func TestNewClientMissingConfig(t *testing.T) {
	logger := logging.NewLogger("error")
	restClient := rest.NewClient(rest.NewConfig(time.Second, 1, false, logger))

	if _, err := NewClient(NewConfig("", "", "id", "secret", 0, "", ""), restClient, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logger); err == nil {
		t.Fatal("expected error for missing tenant")
	}
	if _, err := NewClient(NewConfig("acme", "", "", "", 0, "", ""), restClient, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logger); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

func TestListPublicIdentitiesPagination(t *testing.T) {
	// 237 identities over pages of 100, 100 and 37.
	const total = 237

	var tokenRequests, pageRequests int
	mux := http.NewServeMux()

	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/oauth/token", tokenHandler(t, &tokenRequests))
	mux.HandleFunc("/v3/public-identities", func(w http.ResponseWriter, r *http.Request) {
		pageRequests++

		if got := r.Header.Get("Authorization"); got != "Bearer at-123" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if got := r.URL.Query().Get("count"); got != "true" {
			t.Errorf("expected count=true, got %q", got)
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		if limit != 100 {
			t.Errorf("unexpected limit %d", limit)
		}

		page := make([]map[string]any, 0, limit)
		for i := offset; i < offset+limit && i < total; i++ {
			page = append(page, map[string]any{
				"id":    fmt.Sprintf("id-%03d", i),
				"name":  fmt.Sprintf("user %d", i),
				"email": fmt.Sprintf("user%d@example.com", i),
			})
		}

		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		json.NewEncoder(w).Encode(page)
	})

	c := newTestClient(t, srv.URL, 100)

	identities, err := c.ListPublicIdentities(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(identities) != total {
		t.Fatalf("expected %d identities, got %d", total, len(identities))
	}
	if pageRequests != 3 {
		t.Fatalf("expected 3 page requests, got %d", pageRequests)
	}
	if tokenRequests != 1 {
		t.Fatalf("expected a single token request, got %d", tokenRequests)
	}
	if identities[0].ID != "id-000" || identities[total-1].ID != "id-236" {
		t.Fatal("identities are out of order")
	}
}

func TestListPublicIdentitiesAuthenticationFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_client"}`)
	})
	mux.HandleFunc("/v3/public-identities", func(w http.ResponseWriter, r *http.Request) {
		t.Error("identities must not be fetched without a token")
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv.URL, 100)

	_, err := c.ListPublicIdentities(context.Background())

	authErr := new(AuthenticationError)
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
}

func TestListPublicIdentitiesRetriesTransientFailures(t *testing.T) {
	var tokenRequests, pageRequests int
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", tokenHandler(t, &tokenRequests))
	mux.HandleFunc("/v3/public-identities", func(w http.ResponseWriter, r *http.Request) {
		pageRequests++
		if pageRequests == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Total-Count", "1")
		json.NewEncoder(w).Encode([]map[string]any{{"id": "id-1", "name": "user 1"}})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv.URL, 100)

	identities, err := c.ListPublicIdentities(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(identities) != 1 {
		t.Fatalf("expected 1 identity, got %d", len(identities))
	}
	if pageRequests != 2 {
		t.Fatalf("expected a retry after 429, got %d requests", pageRequests)
	}
}

func TestTimestampUnmarshal(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		want Timestamp
	}{
		{`"2024-05-01T10:00:00Z"`, "2024-05-01T10:00:00Z"},
		{`1714557600000`, "2024-05-01T10:00:00Z"},
		{`"not a timestamp"`, ""},
		{`null`, ""},
	} {
		var ts Timestamp
		if err := json.Unmarshal([]byte(tc.raw), &ts); err != nil {
			t.Fatalf("failed to unmarshal %s: %v", tc.raw, err)
		}
		if ts != tc.want {
			t.Fatalf("expected %q for %s, got %q", tc.want, tc.raw, ts)
		}
	}
}
