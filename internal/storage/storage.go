// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package storage persists the sync run audit trail. Runs are written as
// they happen and only ever read back for inspection, a connector never
// resumes from recorded state.
package storage

import (
	"github.com/canonical/oaa-sync/internal/db"
	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
	"github.com/canonical/oaa-sync/internal/tracing"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewStorage(db db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = db
	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
