// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package veza

import (
	"context"

	"github.com/canonical/oaa-sync/pkg/oaa"
)

type VezaInterface interface {
	GetProvider(ctx context.Context, name string) (*Provider, error)
	CreateProvider(ctx context.Context, name, customTemplate string) (*Provider, error)
	DeleteProvider(ctx context.Context, id string) error
	UpdateProviderIcon(ctx context.Context, id, iconB64 string) error
	GetOrCreateDataSource(ctx context.Context, providerID, name string) (*DataSource, error)
	PushApplication(ctx context.Context, providerName, dataSourceName string, app *oaa.CustomApplication, createProvider bool) ([]string, error)
}
