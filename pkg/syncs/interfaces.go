// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package syncs

import (
	"context"

	"github.com/canonical/oaa-sync/internal/types"
)

type ServiceInterface interface {
	RunSync(ctx context.Context, connector string) (*types.SyncResult, error)
	ListRuns(ctx context.Context, connector string, limit int) ([]types.SyncRun, error)
}

// ConnectorInterface is one runnable connector, keyed by name in the service.
type ConnectorInterface interface {
	Run(ctx context.Context) (*types.SyncResult, error)
}
