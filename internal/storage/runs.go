// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/oaa-sync/internal/types"
)

const runsTable = "sync_runs"

var runColumns = []string{"id", "connector", "status", "user_count", "group_count", "dry_run", "error_message", "started_at", "finished_at"}

// CreateSyncRun inserts a new run in the running state and returns it.
func (s *Storage) CreateSyncRun(ctx context.Context, connector string, dryRun bool) (*types.SyncRun, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.CreateSyncRun")
	defer span.End()

	run := &types.SyncRun{
		ID:        uuid.NewString(),
		Connector: connector,
		Status:    types.RunStatusRunning,
		DryRun:    dryRun,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.Statement(ctx).
		Insert(runsTable).
		Columns("id", "connector", "status", "dry_run", "started_at").
		Values(run.ID, run.Connector, run.Status, run.DryRun, run.StartedAt).
		ExecContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync run: %w", err)
	}

	return run, nil
}

// CompleteSyncRun finalizes a run with its status and counters.
func (s *Storage) CompleteSyncRun(ctx context.Context, id string, status types.RunStatus, users, groups int, runError string) error {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.CompleteSyncRun")
	defer span.End()

	result, err := s.db.Statement(ctx).
		Update(runsTable).
		Set("status", status).
		Set("user_count", users).
		Set("group_count", groups).
		Set("error_message", runError).
		Set("finished_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to complete sync run %s: %w", id, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetSyncRun fetches one run by id.
func (s *Storage) GetSyncRun(ctx context.Context, id string) (*types.SyncRun, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetSyncRun")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(runColumns...).
		From(runsTable).
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sync run %s: %w", id, err)
	}

	return run, nil
}

// ListSyncRuns returns the most recent runs, newest first. An empty
// connector matches all connectors.
func (s *Storage) ListSyncRuns(ctx context.Context, connector string, limit int) ([]types.SyncRun, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ListSyncRuns")
	defer span.End()

	if limit <= 0 {
		limit = 50
	}

	query := s.db.Statement(ctx).
		Select(runColumns...).
		From(runsTable).
		OrderBy("started_at DESC").
		Limit(uint64(limit))
	if connector != "" {
		query = query.Where(sq.Eq{"connector": connector})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	defer rows.Close()

	runs := make([]types.SyncRun, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}

	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*types.SyncRun, error) {
	var (
		run        types.SyncRun
		status     string
		finishedAt sql.NullTime
	)

	if err := row.Scan(&run.ID, &run.Connector, &status, &run.Users, &run.Groups, &run.DryRun, &run.Error, &run.StartedAt, &finishedAt); err != nil {
		return nil, err
	}

	parsed, err := types.ParseRunStatus(status)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", run.ID, err)
	}
	run.Status = parsed

	if finishedAt.Valid {
		t := finishedAt.Time.UTC()
		run.FinishedAt = &t
	}

	return &run, nil
}
