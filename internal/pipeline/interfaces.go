// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pipeline

import (
	"context"

	"github.com/canonical/oaa-sync/internal/types"
	"github.com/canonical/oaa-sync/pkg/oaa"
)

//go:generate mockgen -build_flags=--mod=mod -package pipeline -destination ./mock_pipeline.go -source=interfaces.go

// Target names where a payload lands on the Veza side.
type Target struct {
	ProviderName   string
	DataSourceName string
	Icon           string
}

// DriverInterface is one source system. A driver authenticates, fetches the
// full set of records and maps them into normalized identities. Drivers hold
// no state between runs.
type DriverInterface interface {
	Name() string
	Target() Target
	NewApplication() *oaa.CustomApplication
	FetchIdentities(ctx context.Context) ([]types.Identity, error)
}

// SinkInterface delivers a built payload. The Veza sink pushes it, the file
// sink writes it to disk for dry runs.
type SinkInterface interface {
	DryRun() bool
	Deliver(ctx context.Context, target Target, app *oaa.CustomApplication) ([]string, error)
}

// RunRecorderInterface persists the sync run audit trail. Recording is
// write-only, a run never reads earlier runs back.
type RunRecorderInterface interface {
	CreateSyncRun(ctx context.Context, connector string, dryRun bool) (*types.SyncRun, error)
	CompleteSyncRun(ctx context.Context, id string, status types.RunStatus, users, groups int, runError string) error
}
