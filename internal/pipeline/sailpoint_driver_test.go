// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pipeline

import (
	"context"
	"testing"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/sailpoint"
)

type fakeSailPoint struct {
	identities []sailpoint.PublicIdentity
	err        error
}

func (f *fakeSailPoint) ListPublicIdentities(ctx context.Context) ([]sailpoint.PublicIdentity, error) {
	return f.identities, f.err
}

func TestSailPointDriverTarget(t *testing.T) {
	d := NewSailPointDriver(&fakeSailPoint{}, "acme", logging.NewLogger("error"))

	target := d.Target()
	if target.ProviderName != "SailPoint IdentityNow" {
		t.Fatalf("unexpected provider name %q", target.ProviderName)
	}
	if target.DataSourceName != "SailPoint - acme" {
		t.Fatalf("unexpected data source name %q", target.DataSourceName)
	}
}

func TestSailPointDriverFetchIdentities(t *testing.T) {
	client := &fakeSailPoint{
		identities: []sailpoint.PublicIdentity{
			{ID: "id-1", Name: "Alice", Email: "alice@example.com"},
			{ID: "id-2", Name: "Bob"},
		},
	}
	d := NewSailPointDriver(client, "acme", logging.NewLogger("error"))

	identities, err := d.FetchIdentities(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(identities) != 2 {
		t.Fatalf("expected 2 identities, got %d", len(identities))
	}
}

func TestMapPublicIdentity(t *testing.T) {
	record := sailpoint.PublicIdentity{
		ID:        "id-1",
		Name:      "Alice Doe",
		Email:     "alice@example.com",
		Status:    "ACTIVE",
		Created:   "2024-05-01T10:00:00Z",
		LastLogin: "2024-05-02T10:00:00Z",
		Manager:   &sailpoint.GroupRef{ID: "id-9", Name: "Boss"},
		Groups: []sailpoint.GroupRef{
			{ID: "g1", Name: "Engineering"},
			{ID: "g2", Name: ""},
		},
	}

	identity := MapPublicIdentity(record)

	if identity.UniqueID != "id-1" || identity.Name != "Alice Doe" {
		t.Fatalf("unexpected identity %+v", identity)
	}
	if identity.Attributes["sailpoint_id"] != "id-1" || identity.Attributes["status"] != "ACTIVE" {
		t.Fatalf("unexpected attributes %v", identity.Attributes)
	}
	if identity.ManagerID != "id-9" {
		t.Fatalf("unexpected manager id %q", identity.ManagerID)
	}
	if len(identity.Groups) != 1 || identity.Groups[0].Name != "Engineering" {
		t.Fatalf("nameless groups must be dropped, got %v", identity.Groups)
	}
	if len(identity.Roles) != 1 || identity.Roles[0] != "access" {
		t.Fatalf("unexpected roles %v", identity.Roles)
	}
	if identity.CreatedAt != "2024-05-01T10:00:00Z" {
		t.Fatalf("unexpected created_at %q", identity.CreatedAt)
	}
}

func TestMapPublicIdentityWithoutEmail(t *testing.T) {
	identity := MapPublicIdentity(sailpoint.PublicIdentity{ID: "id-2", Name: "Bob"})

	if len(identity.Roles) != 0 {
		t.Fatalf("identities without email must carry no grants, got %v", identity.Roles)
	}
	if len(identity.Identities) != 0 {
		t.Fatalf("unexpected identities %v", identity.Identities)
	}
}

func TestMapPublicIdentityAliasFallback(t *testing.T) {
	identity := MapPublicIdentity(sailpoint.PublicIdentity{ID: "id-3", Alias: "bdoe"})

	if identity.Name != "bdoe" {
		t.Fatalf("expected alias fallback, got %q", identity.Name)
	}
}
