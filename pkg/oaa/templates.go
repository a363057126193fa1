// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package oaa models the Veza Open Authorization API custom application
// payload. It owns the wire format pushed to the ingestion endpoint and the
// deterministic serialization used for dry-run output.
package oaa

import (
	"fmt"
	"regexp"
)

type PropertyType string

const (
	PropertyTypeString    PropertyType = "STRING"
	PropertyTypeNumber    PropertyType = "NUMBER"
	PropertyTypeBoolean   PropertyType = "BOOLEAN"
	PropertyTypeTimestamp PropertyType = "TIMESTAMP"
)

type Permission string

const (
	PermissionDataRead      Permission = "DataRead"
	PermissionDataWrite     Permission = "DataWrite"
	PermissionMetadataRead  Permission = "MetadataRead"
	PermissionMetadataWrite Permission = "MetadataWrite"
	PermissionUncategorized Permission = "Uncategorized"
)

var propertyNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// CustomApplication accumulates users, groups and permissions for one
// provider data source before serialization into the OAA payload.
type CustomApplication struct {
	Name            string
	ApplicationType string
	Description     string

	userProperties map[string]PropertyType
	users          map[string]*LocalUser
	groups         map[string]*LocalGroup
	permissions    map[string]*CustomPermission
}

// LocalUser is one user entry within the application.
type LocalUser struct {
	Name        string
	UniqueID    string
	Identities  []string
	Active      bool
	CreatedAt   string
	LastLoginAt string

	properties map[string]string
	groups     map[string]struct{}
	grants     map[string]bool

	app *CustomApplication
}

// LocalGroup is one group entry within the application.
type LocalGroup struct {
	Name     string
	UniqueID string
}

// CustomPermission names a permission and its canonical effect set. An empty
// effect set is valid and marks a pass-through label that was not mapped.
type CustomPermission struct {
	Name        string
	Permissions []Permission
}

func NewCustomApplication(name, applicationType, description string) *CustomApplication {
	a := new(CustomApplication)

	a.Name = name
	a.ApplicationType = applicationType
	a.Description = description

	a.userProperties = make(map[string]PropertyType)
	a.users = make(map[string]*LocalUser)
	a.groups = make(map[string]*LocalGroup)
	a.permissions = make(map[string]*CustomPermission)

	return a
}

// DefineUserProperty registers a custom local-user property. Property names
// must be lower snake case per the OAA schema.
func (a *CustomApplication) DefineUserProperty(name string, propertyType PropertyType) error {
	if !propertyNamePattern.MatchString(name) {
		return fmt.Errorf("invalid property name %q", name)
	}

	a.userProperties[name] = propertyType
	return nil
}

// AddCustomPermission registers a permission definition. Re-adding an
// existing name overwrites its effect set.
func (a *CustomApplication) AddCustomPermission(name string, permissions []Permission) {
	a.permissions[name] = &CustomPermission{Name: name, Permissions: permissions}
}

// HasPermission reports whether a permission definition exists.
func (a *CustomApplication) HasPermission(name string) bool {
	_, ok := a.permissions[name]
	return ok
}

// AddLocalUser adds a user keyed by its source unique id. Adding a duplicate
// unique id is an error, deduplication is the caller's responsibility.
func (a *CustomApplication) AddLocalUser(name, uniqueID string, identities []string) (*LocalUser, error) {
	if uniqueID == "" {
		return nil, fmt.Errorf("local user %q must have a unique id", name)
	}
	if _, ok := a.users[uniqueID]; ok {
		return nil, fmt.Errorf("local user %q already exists", uniqueID)
	}

	u := &LocalUser{
		Name:       name,
		UniqueID:   uniqueID,
		Identities: identities,
		properties: make(map[string]string),
		groups:     make(map[string]struct{}),
		grants:     make(map[string]bool),
		app:        a,
	}
	a.users[uniqueID] = u

	return u, nil
}

// AddLocalGroup adds a group keyed by unique id. Adding the same id again
// returns the existing group.
func (a *CustomApplication) AddLocalGroup(name, uniqueID string) *LocalGroup {
	if uniqueID == "" {
		uniqueID = name
	}
	if g, ok := a.groups[uniqueID]; ok {
		return g
	}

	g := &LocalGroup{Name: name, UniqueID: uniqueID}
	a.groups[uniqueID] = g

	return g
}

// UserCount returns the number of local users added so far.
func (a *CustomApplication) UserCount() int {
	return len(a.users)
}

// GroupCount returns the number of local groups added so far.
func (a *CustomApplication) GroupCount() int {
	return len(a.groups)
}

// SetProperty sets a custom property value. The property must have been
// defined on the application first.
func (u *LocalUser) SetProperty(name, value string) error {
	if _, ok := u.app.userProperties[name]; !ok {
		return fmt.Errorf("property %q is not defined on application %q", name, u.app.Name)
	}

	u.properties[name] = value
	return nil
}

// AddGroup makes the user a member of the group with the given unique id.
// The group must exist on the application.
func (u *LocalUser) AddGroup(groupID string) error {
	if _, ok := u.app.groups[groupID]; !ok {
		return fmt.Errorf("group %q does not exist on application %q", groupID, u.app.Name)
	}

	u.groups[groupID] = struct{}{}
	return nil
}

// AddPermission grants the named permission to the user. Permissions without
// a definition are registered with an empty effect set so that unmapped role
// labels survive into the payload instead of being dropped.
func (u *LocalUser) AddPermission(permission string, applyToApplication bool) {
	if !u.app.HasPermission(permission) {
		u.app.AddCustomPermission(permission, nil)
	}

	u.grants[permission] = applyToApplication
}
