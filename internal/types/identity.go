// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Identity is the normalized representation of a single user record fetched
// from a source system. It is the only shape the pipeline operates on; raw
// source JSON never crosses the mapper boundary.
type Identity struct {
	// UniqueID is the source-system identifier, unique within one sync run.
	UniqueID string `json:"unique_id" validate:"required"`
	Name     string `json:"name"`

	// Identities holds the external identity keys, typically email addresses.
	Identities []string `json:"identities,omitempty" validate:"omitempty,dive,email"`

	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at,omitempty"`
	LastLoginAt string `json:"last_login_at,omitempty"`

	// ManagerID is a back-reference to another identity's UniqueID. It
	// carries no ownership and may point at an identity outside this run.
	ManagerID string `json:"manager_id,omitempty"`

	Attributes map[string]string `json:"attributes,omitempty"`
	Groups     []Group           `json:"groups,omitempty"`
	Roles      []string          `json:"roles,omitempty"`
}

// Group is a named group membership carried by an identity.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
}

// Validate checks the identity against its schema. It is called once per
// record at the mapper boundary.
func (i *Identity) Validate() error {
	if err := validate.Struct(i); err != nil {
		return fmt.Errorf("invalid identity %q: %w", i.UniqueID, err)
	}
	return nil
}
