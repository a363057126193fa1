// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
	"time"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

var ErrInvalidRunStatus = errors.New("invalid run status")

// SyncRun is one recorded execution of a connector.
type SyncRun struct {
	ID         string     `json:"id"`
	Connector  string     `json:"connector"`
	Status     RunStatus  `json:"status"`
	Users      int        `json:"users"`
	Groups     int        `json:"groups"`
	DryRun     bool       `json:"dry_run"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// SyncResult summarizes a completed connector run.
type SyncResult struct {
	Connector string   `json:"connector"`
	Users     int      `json:"users"`
	Groups    int      `json:"groups"`
	DryRun    bool     `json:"dry_run"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ParseRunStatus converts a string to a RunStatus.
func ParseRunStatus(s string) (RunStatus, error) {
	switch s {
	case "running":
		return RunStatusRunning, nil
	case "succeeded":
		return RunStatusSucceeded, nil
	case "failed":
		return RunStatusFailed, nil
	default:
		return "", ErrInvalidRunStatus
	}
}
