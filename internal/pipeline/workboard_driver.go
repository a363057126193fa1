// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/types"
	"github.com/canonical/oaa-sync/internal/workboard"
	"github.com/canonical/oaa-sync/pkg/oaa"
)

var _ DriverInterface = (*WorkBoardDriver)(nil)

// WorkBoardDriver syncs WorkBoard users into the "WorkBoard" provider.
type WorkBoardDriver struct {
	client workboard.WorkBoardInterface
	host   string

	logger logging.LoggerInterface
}

// NewWorkBoardDriver wraps a WorkBoard client. baseURL is only used to name
// the data source after the instance host.
func NewWorkBoardDriver(client workboard.WorkBoardInterface, baseURL string, logger logging.LoggerInterface) *WorkBoardDriver {
	d := new(WorkBoardDriver)

	d.client = client
	d.host = strings.TrimRight(baseURL, "/")
	if _, host, found := strings.Cut(d.host, "//"); found {
		d.host = host
	}
	d.logger = logger

	return d
}

func (d *WorkBoardDriver) Name() string {
	return "workboard"
}

func (d *WorkBoardDriver) Target() Target {
	return Target{
		ProviderName:   "WorkBoard",
		DataSourceName: "WorkBoard - " + d.host,
		Icon:           workboardIconB64,
	}
}

func (d *WorkBoardDriver) NewApplication() *oaa.CustomApplication {
	app := oaa.NewCustomApplication("WorkBoard", "Collaboration", "WorkBoard OKR and Strategy Execution Platform")

	for _, name := range []string{"workboard_id", "email", "title", "company", "manager_id", "manager_role", "time_zone", "external_id"} {
		// Names are static and valid, the error path is unreachable.
		_ = app.DefineUserProperty(name, oaa.PropertyTypeString)
	}

	app.AddCustomPermission("admin", []oaa.Permission{oaa.PermissionDataRead, oaa.PermissionDataWrite, oaa.PermissionMetadataRead, oaa.PermissionMetadataWrite})
	app.AddCustomPermission("user", []oaa.Permission{oaa.PermissionDataRead, oaa.PermissionDataWrite})
	app.AddCustomPermission("viewer", []oaa.Permission{oaa.PermissionDataRead, oaa.PermissionMetadataRead})

	return app
}

// FetchIdentities verifies the token against the current-user endpoint, then
// pages through all users and maps them.
func (d *WorkBoardDriver) FetchIdentities(ctx context.Context) ([]types.Identity, error) {
	if _, err := d.client.GetCurrentUser(ctx); err != nil {
		return nil, fmt.Errorf("workboard authentication check failed: %w", err)
	}

	users, err := d.client.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	identities := make([]types.Identity, 0, len(users))
	for _, user := range users {
		identities = append(identities, MapWorkBoardUser(user))
	}

	return identities, nil
}

// MapWorkBoardUser normalizes one WorkBoard user record. Users holding an
// admin title or reporting to an admin-role manager get the admin permission,
// everyone else gets user.
func MapWorkBoardUser(user workboard.User) types.Identity {
	identity := types.Identity{
		UniqueID:    string(user.UserID),
		Name:        user.FullName(),
		Active:      true,
		CreatedAt:   epochToRFC3339(string(user.CreateAt)),
		LastLoginAt: epochToRFC3339(string(user.LastVisitedAt)),
		Attributes:  map[string]string{"workboard_id": string(user.UserID)},
	}

	if identity.Name == "" {
		identity.Name = user.Email
	}
	if user.Email != "" {
		identity.Identities = []string{user.Email}
		identity.Attributes["email"] = user.Email
	}
	if user.Profile.Title != "" {
		identity.Attributes["title"] = user.Profile.Title
	}
	if user.Profile.Company != "" {
		identity.Attributes["company"] = user.Profile.Company
	}
	if user.TimeZone != "" {
		identity.Attributes["time_zone"] = user.TimeZone
	}
	if user.ExternalID != "" {
		identity.Attributes["external_id"] = user.ExternalID
	}

	managerRole := ""
	for _, manager := range user.Manager {
		if manager.UserID == "" {
			continue
		}
		identity.ManagerID = string(manager.UserID)
		if manager.Role != "" {
			managerRole = manager.Role
			identity.Attributes["manager_role"] = manager.Role
		}
		break
	}

	for _, attribute := range user.Profile.CustomAttributes {
		if attribute.Name == "" || attribute.Value == "" {
			continue
		}
		identity.Attributes["custom_"+safePropertyName(attribute.Name)] = attribute.Value
	}

	role := "user"
	if containsAdmin(user.Profile.Title) || containsAdmin(managerRole) {
		role = "admin"
	}
	identity.Roles = []string{role}

	return identity
}

func containsAdmin(s string) bool {
	return strings.Contains(strings.ToLower(s), "admin")
}

// safePropertyName lowers an attribute name into the property name charset.
func safePropertyName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// epochToRFC3339 converts an epoch-seconds value, possibly string encoded,
// to RFC 3339. Unparseable values map to the empty string.
func epochToRFC3339(s string) string {
	if s == "" {
		return ""
	}
	seconds, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return ""
	}
	return time.Unix(seconds, 0).UTC().Format(time.RFC3339)
}
