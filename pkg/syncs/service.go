// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package syncs exposes the connector trigger and run history API.
package syncs

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
	"github.com/canonical/oaa-sync/internal/storage"
	"github.com/canonical/oaa-sync/internal/tracing"
	"github.com/canonical/oaa-sync/internal/types"
)

var (
	ErrUnknownConnector = errors.New("unknown connector")
	ErrNoRunHistory     = errors.New("run history is not configured")
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	connectors map[string]ConnectorInterface
	storage    storage.StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// NewService indexes the available connectors. storage may be nil when no
// DSN is configured, run listing then returns ErrNoRunHistory.
func NewService(connectors map[string]ConnectorInterface, s storage.StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	svc := new(Service)

	svc.connectors = connectors
	svc.storage = s
	svc.tracer = tracer
	svc.monitor = monitor
	svc.logger = logger

	return svc
}

// RunSync executes the named connector synchronously and returns its result.
func (s *Service) RunSync(ctx context.Context, connector string) (*types.SyncResult, error) {
	ctx, span := s.tracer.Start(ctx, "syncs.Service.RunSync")
	defer span.End()

	c, ok := s.connectors[connector]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConnector, connector)
	}

	s.logger.Infof("starting sync for connector %q", connector)

	return c.Run(ctx)
}

// ListRuns returns recent runs from the audit trail, newest first.
func (s *Service) ListRuns(ctx context.Context, connector string, limit int) ([]types.SyncRun, error) {
	ctx, span := s.tracer.Start(ctx, "syncs.Service.ListRuns")
	defer span.End()

	if s.storage == nil {
		return nil, ErrNoRunHistory
	}

	return s.storage.ListSyncRuns(ctx, connector, limit)
}
