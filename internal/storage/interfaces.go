// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/oaa-sync/internal/types"
)

type StorageInterface interface {
	CreateSyncRun(ctx context.Context, connector string, dryRun bool) (*types.SyncRun, error)
	CompleteSyncRun(ctx context.Context, id string, status types.RunStatus, users, groups int, runError string) error
	GetSyncRun(ctx context.Context, id string) (*types.SyncRun, error)
	ListSyncRuns(ctx context.Context, connector string, limit int) ([]types.SyncRun, error)
}
