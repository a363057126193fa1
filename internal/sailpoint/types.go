// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sailpoint

import (
	"encoding/json"
	"time"
)

// Timestamp normalizes the two timestamp encodings the IdentityNow API uses,
// epoch milliseconds and ISO 8601 strings, into an RFC 3339 string. Values
// that parse as neither decode to the empty string rather than failing the
// whole page.
type Timestamp string

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			*t = Timestamp(parsed.UTC().Format(time.RFC3339))
		}
		return nil
	}

	var ms int64
	if err := json.Unmarshal(b, &ms); err == nil {
		*t = Timestamp(time.UnixMilli(ms).UTC().Format(time.RFC3339))
		return nil
	}

	return nil
}

// PublicIdentity is one record from the /v3/public-identities collection.
type PublicIdentity struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Alias     string     `json:"alias"`
	Email     string     `json:"email"`
	Status    string     `json:"status"`
	Created   Timestamp  `json:"created"`
	LastLogin Timestamp  `json:"lastLogin"`
	Manager   *GroupRef  `json:"manager"`
	Groups    []GroupRef `json:"groups"`
}

// GroupRef is a named reference carried on an identity.
type GroupRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
