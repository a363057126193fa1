// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workboard

import (
	"encoding/json"
	"fmt"
)

// ID tolerates the WorkBoard API returning identifiers as either JSON
// strings or numbers.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*id = ID(n.String())
		return nil
	}

	return fmt.Errorf("id is neither string nor number: %s", b)
}

// User is a single WorkBoard user record.
type User struct {
	UserID        ID           `json:"user_id"`
	Email         string       `json:"email"`
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	WbEmail       string       `json:"wb_email"`
	CreateAt      ID           `json:"create_at"`
	LastVisitedAt ID           `json:"last_visited_at"`
	TimeZone      string       `json:"time_zone"`
	ExternalID    string       `json:"external_id"`
	OrgID         ID           `json:"org_id"`
	Manager       []ManagerRef `json:"manager"`
	Profile       Profile      `json:"profile"`
}

// ManagerRef is a back-reference to the user's manager.
type ManagerRef struct {
	UserID ID     `json:"user_id"`
	Role   string `json:"role"`
}

type Profile struct {
	Title            string            `json:"title"`
	Company          string            `json:"company"`
	CustomAttributes []CustomAttribute `json:"custom_attributes"`
}

type CustomAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FullName joins first and last name, trimming when either is empty.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
