// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package pipeline runs the sync: fetch identities from a source driver,
// normalize and merge them, build the OAA payload and hand it to a sink.
// A run is single threaded and stateless, every run rebuilds the full
// payload from scratch.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
	"github.com/canonical/oaa-sync/internal/tracing"
	"github.com/canonical/oaa-sync/internal/types"
	"github.com/canonical/oaa-sync/pkg/oaa"
)

type Connector struct {
	driver DriverInterface
	sink   SinkInterface
	runs   RunRecorderInterface

	debugDumpPath string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// NewConnector wires a driver to a sink. The run recorder may be nil, in
// which case no audit trail is written.
func NewConnector(driver DriverInterface, sink SinkInterface, runs RunRecorderInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Connector {
	c := new(Connector)

	c.driver = driver
	c.sink = sink
	c.runs = runs
	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}

// SetDebugDumpPath makes Run write the serialized payload to the given path
// before delivery, regardless of sink.
func (c *Connector) SetDebugDumpPath(path string) {
	c.debugDumpPath = path
}

// Run executes one full sync and returns its summary. Fetch and delivery
// failures abort the run, per-record issues are collected as warnings.
func (c *Connector) Run(ctx context.Context) (*types.SyncResult, error) {
	ctx, span := c.tracer.Start(ctx, "pipeline.Connector.Run")
	defer span.End()

	connector := c.driver.Name()

	var runID string
	if c.runs != nil {
		run, err := c.runs.CreateSyncRun(ctx, connector, c.sink.DryRun())
		if err != nil {
			// The audit trail is best effort, a sync is still worth
			// finishing when the database is down.
			c.logger.Warnf("failed to record sync run start: %v", err)
		} else {
			runID = run.ID
		}
	}

	result, err := c.run(ctx)
	if err != nil {
		c.monitor.IncSyncRunCounter(connector, string(types.RunStatusFailed))
		c.completeRun(ctx, runID, types.RunStatusFailed, nil, err)
		return nil, err
	}

	c.monitor.IncSyncRunCounter(connector, string(types.RunStatusSucceeded))
	c.completeRun(ctx, runID, types.RunStatusSucceeded, result, nil)

	return result, nil
}

func (c *Connector) run(ctx context.Context) (*types.SyncResult, error) {
	connector := c.driver.Name()

	identities, err := c.driver.FetchIdentities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch identities from %s: %w", connector, err)
	}
	c.logger.Infof("fetched %d identities from %s", len(identities), connector)

	warnings := make([]string, 0)

	valid := make([]types.Identity, 0, len(identities))
	for _, identity := range identities {
		if err := identity.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping record: %v", err))
			continue
		}
		valid = append(valid, identity)
	}

	merged := mergeIdentities(valid)
	if len(merged) < len(valid) {
		c.logger.Infof("merged %d duplicate records", len(valid)-len(merged))
	}

	app := c.driver.NewApplication()
	warnings = append(warnings, buildApplication(app, merged)...)

	if c.debugDumpPath != "" {
		if err := writePayload(c.debugDumpPath, app); err != nil {
			return nil, err
		}
		c.logger.Infof("wrote payload dump to %s", c.debugDumpPath)
	}

	sinkWarnings, err := c.sink.Deliver(ctx, c.driver.Target(), app)
	if err != nil {
		return nil, fmt.Errorf("failed to deliver payload for %s: %w", connector, err)
	}
	warnings = append(warnings, sinkWarnings...)

	for _, warning := range warnings {
		c.logger.Warn(warning)
	}

	return &types.SyncResult{
		Connector: connector,
		Users:     app.UserCount(),
		Groups:    app.GroupCount(),
		DryRun:    c.sink.DryRun(),
		Warnings:  warnings,
	}, nil
}

func (c *Connector) completeRun(ctx context.Context, runID string, status types.RunStatus, result *types.SyncResult, runErr error) {
	if c.runs == nil || runID == "" {
		return
	}

	var users, groups int
	if result != nil {
		users, groups = result.Users, result.Groups
	}
	message := ""
	if runErr != nil {
		message = runErr.Error()
	}

	if err := c.runs.CompleteSyncRun(ctx, runID, status, users, groups, message); err != nil {
		c.logger.Warnf("failed to record sync run completion: %v", err)
	}
}

// mergeIdentities collapses records sharing a unique id into one. Scalars
// keep the first non-empty value, sets are unioned, attributes are
// first-writer-wins. Output preserves first-seen order.
func mergeIdentities(identities []types.Identity) []types.Identity {
	merged := make(map[string]*types.Identity, len(identities))
	order := make([]string, 0, len(identities))

	for _, identity := range identities {
		existing, ok := merged[identity.UniqueID]
		if !ok {
			clone := identity
			merged[identity.UniqueID] = &clone
			order = append(order, identity.UniqueID)
			continue
		}

		if existing.Name == "" {
			existing.Name = identity.Name
		}
		if existing.CreatedAt == "" {
			existing.CreatedAt = identity.CreatedAt
		}
		if existing.LastLoginAt == "" {
			existing.LastLoginAt = identity.LastLoginAt
		}
		if existing.ManagerID == "" {
			existing.ManagerID = identity.ManagerID
		}
		existing.Active = existing.Active || identity.Active

		existing.Identities = unionStrings(existing.Identities, identity.Identities)
		existing.Roles = unionStrings(existing.Roles, identity.Roles)
		existing.Groups = unionGroups(existing.Groups, identity.Groups)

		for key, value := range identity.Attributes {
			if _, ok := existing.Attributes[key]; !ok {
				if existing.Attributes == nil {
					existing.Attributes = make(map[string]string)
				}
				existing.Attributes[key] = value
			}
		}
	}

	out := make([]types.Identity, 0, len(order))
	for _, id := range order {
		out = append(out, *merged[id])
	}

	return out
}

// buildApplication populates the OAA application from merged identities.
// Attribute properties not covered by the driver's canonical set are defined
// on the fly so source-specific custom attributes survive into the payload.
func buildApplication(app *oaa.CustomApplication, identities []types.Identity) []string {
	warnings := make([]string, 0)

	for _, identity := range identities {
		user, err := app.AddLocalUser(identity.Name, identity.UniqueID, identity.Identities)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping user: %v", err))
			continue
		}

		user.Active = identity.Active
		user.CreatedAt = identity.CreatedAt
		user.LastLoginAt = identity.LastLoginAt

		attributes := identity.Attributes
		if identity.ManagerID != "" {
			if _, ok := attributes["manager_id"]; !ok {
				if attributes == nil {
					attributes = map[string]string{}
				}
				attributes["manager_id"] = identity.ManagerID
			}
		}

		keys := make([]string, 0, len(attributes))
		for key := range attributes {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if err := app.DefineUserProperty(key, oaa.PropertyTypeString); err != nil {
				warnings = append(warnings, fmt.Sprintf("dropping attribute %q on user %s: %v", key, identity.UniqueID, err))
				continue
			}
			if err := user.SetProperty(key, attributes[key]); err != nil {
				warnings = append(warnings, fmt.Sprintf("dropping attribute %q on user %s: %v", key, identity.UniqueID, err))
			}
		}

		for _, group := range identity.Groups {
			g := app.AddLocalGroup(group.Name, group.ID)
			if err := user.AddGroup(g.UniqueID); err != nil {
				warnings = append(warnings, fmt.Sprintf("dropping group %q on user %s: %v", group.Name, identity.UniqueID, err))
			}
		}

		for _, role := range identity.Roles {
			user.AddPermission(role, true)
		}
	}

	return warnings
}

func writePayload(path string, app *oaa.CustomApplication) error {
	data, err := json.MarshalIndent(app.GetPayload(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize payload: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write payload to %s: %w", path, err)
	}
	return nil
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]struct{}, len(a))
	out := a
	for _, v := range a {
		seen[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func unionGroups(a, b []types.Group) []types.Group {
	seen := make(map[string]struct{}, len(a))
	out := a
	for _, g := range a {
		seen[groupKey(g)] = struct{}{}
	}
	for _, g := range b {
		if _, ok := seen[groupKey(g)]; !ok {
			seen[groupKey(g)] = struct{}{}
			out = append(out, g)
		}
	}
	return out
}

func groupKey(g types.Group) string {
	if g.ID != "" {
		return g.ID
	}
	return g.Name
}
