// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pipeline

import (
	"context"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/sailpoint"
	"github.com/canonical/oaa-sync/internal/types"
	"github.com/canonical/oaa-sync/pkg/oaa"
)

var _ DriverInterface = (*SailPointDriver)(nil)

// SailPointDriver syncs IdentityNow public identities into the
// "SailPoint IdentityNow" provider.
type SailPointDriver struct {
	client sailpoint.SailPointInterface
	tenant string

	logger logging.LoggerInterface
}

func NewSailPointDriver(client sailpoint.SailPointInterface, tenant string, logger logging.LoggerInterface) *SailPointDriver {
	d := new(SailPointDriver)

	d.client = client
	d.tenant = tenant
	d.logger = logger

	return d
}

func (d *SailPointDriver) Name() string {
	return "sailpoint"
}

func (d *SailPointDriver) Target() Target {
	return Target{
		ProviderName:   "SailPoint IdentityNow",
		DataSourceName: "SailPoint - " + d.tenant,
		Icon:           sailpointIconB64,
	}
}

func (d *SailPointDriver) NewApplication() *oaa.CustomApplication {
	app := oaa.NewCustomApplication("SailPoint IdentityNow", "IDaaS", "SailPoint IdentityNow Integration")

	for _, name := range []string{"sailpoint_id", "email", "status", "manager_id"} {
		_ = app.DefineUserProperty(name, oaa.PropertyTypeString)
	}

	app.AddCustomPermission("access", []oaa.Permission{oaa.PermissionDataRead, oaa.PermissionDataWrite})

	return app
}

func (d *SailPointDriver) FetchIdentities(ctx context.Context) ([]types.Identity, error) {
	records, err := d.client.ListPublicIdentities(ctx)
	if err != nil {
		return nil, err
	}

	identities := make([]types.Identity, 0, len(records))
	for _, record := range records {
		identities = append(identities, MapPublicIdentity(record))
	}

	return identities, nil
}

// MapPublicIdentity normalizes one IdentityNow record. Identities carrying
// an email receive the access permission, the rest appear without grants.
func MapPublicIdentity(record sailpoint.PublicIdentity) types.Identity {
	identity := types.Identity{
		UniqueID:    record.ID,
		Name:        record.Name,
		Active:      true,
		CreatedAt:   string(record.Created),
		LastLoginAt: string(record.LastLogin),
		Attributes:  map[string]string{"sailpoint_id": record.ID},
	}

	if identity.Name == "" {
		identity.Name = record.Alias
	}
	if record.Email != "" {
		identity.Identities = []string{record.Email}
		identity.Attributes["email"] = record.Email
		identity.Roles = []string{"access"}
	}
	if record.Status != "" {
		identity.Attributes["status"] = record.Status
	}
	if record.Manager != nil && record.Manager.ID != "" {
		identity.ManagerID = record.Manager.ID
	}

	for _, group := range record.Groups {
		if group.Name == "" {
			continue
		}
		identity.Groups = append(identity.Groups, types.Group{ID: group.ID, Name: group.Name})
	}

	return identity
}
