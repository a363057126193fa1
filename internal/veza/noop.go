// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package veza

import (
	"context"

	"github.com/canonical/oaa-sync/pkg/oaa"
)

var _ VezaInterface = (*NoopClient)(nil)

// NoopClient accepts every call and pushes nothing. Used when no Veza
// instance is configured, dry runs write their payload to disk instead.
type NoopClient struct{}

func NewNoopClient() *NoopClient {
	return new(NoopClient)
}

func (c *NoopClient) GetProvider(ctx context.Context, name string) (*Provider, error) {
	return nil, nil
}

func (c *NoopClient) CreateProvider(ctx context.Context, name, customTemplate string) (*Provider, error) {
	return &Provider{Name: name, CustomTemplate: customTemplate}, nil
}

func (c *NoopClient) DeleteProvider(ctx context.Context, id string) error {
	return nil
}

func (c *NoopClient) UpdateProviderIcon(ctx context.Context, id, iconB64 string) error {
	return nil
}

func (c *NoopClient) GetOrCreateDataSource(ctx context.Context, providerID, name string) (*DataSource, error) {
	return &DataSource{Name: name}, nil
}

func (c *NoopClient) PushApplication(ctx context.Context, providerName, dataSourceName string, app *oaa.CustomApplication, createProvider bool) ([]string, error) {
	return nil, nil
}
