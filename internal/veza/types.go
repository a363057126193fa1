// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package veza

// Provider is a custom provider registered on the Veza instance.
type Provider struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CustomTemplate string `json:"custom_template"`
	State          string `json:"state"`
}

// DataSource is one data source under a custom provider.
type DataSource struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}
