// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package oaa

import (
	"encoding/json"
	"sort"
)

// Payload is the top-level document pushed to the OAA ingestion endpoint.
type Payload struct {
	CustomPropertyDefinition propertyDefinitions    `json:"custom_property_definition"`
	Applications             []applicationPayload   `json:"applications"`
	Permissions              []permissionPayload    `json:"permissions"`
	IdentityToPermissions    []identityGrantPayload `json:"identity_to_permissions"`
}

type propertyDefinitions struct {
	Applications []applicationDefinition `json:"applications"`
}

type applicationDefinition struct {
	ApplicationType     string                  `json:"application_type"`
	LocalUserProperties map[string]PropertyType `json:"local_user_properties,omitempty"`
}

type applicationPayload struct {
	Name            string              `json:"name"`
	ApplicationType string              `json:"application_type"`
	Description     string              `json:"description"`
	LocalUsers      []localUserPayload  `json:"local_users"`
	LocalGroups     []localGroupPayload `json:"local_groups"`
}

type localUserPayload struct {
	Name             string            `json:"name"`
	UniqueID         string            `json:"unique_id"`
	Identities       []string          `json:"identities,omitempty"`
	IsActive         bool              `json:"is_active"`
	CreatedAt        string            `json:"created_at,omitempty"`
	LastLoginAt      string            `json:"last_login_at,omitempty"`
	Groups           []string          `json:"groups,omitempty"`
	CustomProperties map[string]string `json:"custom_properties,omitempty"`
}

type localGroupPayload struct {
	Name     string `json:"name"`
	UniqueID string `json:"unique_id"`
}

type permissionPayload struct {
	Name           string       `json:"name"`
	PermissionType []Permission `json:"permission_type"`
}

type identityGrantPayload struct {
	Identity               string                 `json:"identity"`
	IdentityType           string                 `json:"identity_type"`
	ApplicationPermissions []applicationGrantJSON `json:"application_permissions"`
}

type applicationGrantJSON struct {
	Application        string `json:"application"`
	Permission         string `json:"permission"`
	ApplyToApplication bool   `json:"apply_to_application"`
}

// GetPayload renders the accumulated application into the OAA document.
// Output ordering is stable: users, groups, permissions and grants are
// sorted, so identical inputs serialize byte-for-byte identically.
func (a *CustomApplication) GetPayload() *Payload {
	app := applicationPayload{
		Name:            a.Name,
		ApplicationType: a.ApplicationType,
		Description:     a.Description,
		LocalUsers:      make([]localUserPayload, 0, len(a.users)),
		LocalGroups:     make([]localGroupPayload, 0, len(a.groups)),
	}

	grants := make([]identityGrantPayload, 0)

	for _, id := range sortedKeys(a.users) {
		u := a.users[id]
		app.LocalUsers = append(app.LocalUsers, localUserPayload{
			Name:             u.Name,
			UniqueID:         u.UniqueID,
			Identities:       u.Identities,
			IsActive:         u.Active,
			CreatedAt:        u.CreatedAt,
			LastLoginAt:      u.LastLoginAt,
			Groups:           sortedSet(u.groups),
			CustomProperties: u.properties,
		})

		if len(u.grants) == 0 {
			continue
		}

		grant := identityGrantPayload{
			Identity:               u.UniqueID,
			IdentityType:           "local_user",
			ApplicationPermissions: make([]applicationGrantJSON, 0, len(u.grants)),
		}
		for _, name := range sortedKeys(u.grants) {
			grant.ApplicationPermissions = append(grant.ApplicationPermissions, applicationGrantJSON{
				Application:        a.Name,
				Permission:         name,
				ApplyToApplication: u.grants[name],
			})
		}
		grants = append(grants, grant)
	}

	for _, id := range sortedKeys(a.groups) {
		g := a.groups[id]
		app.LocalGroups = append(app.LocalGroups, localGroupPayload{Name: g.Name, UniqueID: g.UniqueID})
	}

	permissions := make([]permissionPayload, 0, len(a.permissions))
	for _, name := range sortedKeys(a.permissions) {
		p := a.permissions[name]
		permissionType := p.Permissions
		if permissionType == nil {
			permissionType = []Permission{}
		}
		permissions = append(permissions, permissionPayload{Name: p.Name, PermissionType: permissionType})
	}

	return &Payload{
		CustomPropertyDefinition: propertyDefinitions{
			Applications: []applicationDefinition{
				{
					ApplicationType:     a.ApplicationType,
					LocalUserProperties: a.userProperties,
				},
			},
		},
		Applications:          []applicationPayload{app},
		Permissions:           permissions,
		IdentityToPermissions: grants,
	}
}

// MarshalJSON serializes the payload with stable ordering.
func (a *CustomApplication) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.GetPayload())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSet(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	return sortedKeys(m)
}
