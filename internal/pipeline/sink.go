// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pipeline

import (
	"context"
	"fmt"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/veza"
	"github.com/canonical/oaa-sync/pkg/oaa"
)

var (
	_ SinkInterface = (*VezaSink)(nil)
	_ SinkInterface = (*FileSink)(nil)
)

// VezaSink pushes payloads to a Veza instance, creating the provider and
// data source on first use. With force set the provider is deleted and
// recreated, which drops all previously ingested data.
type VezaSink struct {
	client veza.VezaInterface
	force  bool

	logger logging.LoggerInterface
}

func NewVezaSink(client veza.VezaInterface, force bool, logger logging.LoggerInterface) *VezaSink {
	s := new(VezaSink)

	s.client = client
	s.force = force
	s.logger = logger

	return s
}

func (s *VezaSink) DryRun() bool {
	return false
}

func (s *VezaSink) Deliver(ctx context.Context, target Target, app *oaa.CustomApplication) ([]string, error) {
	if s.force {
		provider, err := s.client.GetProvider(ctx, target.ProviderName)
		if err != nil {
			return nil, err
		}
		if provider != nil {
			s.logger.Infof("force enabled, deleting provider %q", target.ProviderName)
			if err := s.client.DeleteProvider(ctx, provider.ID); err != nil {
				return nil, err
			}
		}
	}

	provider, err := s.client.GetProvider(ctx, target.ProviderName)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		provider, err = s.client.CreateProvider(ctx, target.ProviderName, "application")
		if err != nil {
			return nil, err
		}
		if target.Icon != "" {
			if err := s.client.UpdateProviderIcon(ctx, provider.ID, target.Icon); err != nil {
				// Cosmetic, the push matters more than the icon.
				s.logger.Warnf("failed to set provider icon: %v", err)
			}
		}
	}

	return s.client.PushApplication(ctx, target.ProviderName, target.DataSourceName, app, true)
}

// FileSink writes the payload to a local file instead of pushing it. Used
// for dry runs, the output is deterministic and diffable between runs.
type FileSink struct {
	path string

	logger logging.LoggerInterface
}

func NewFileSink(path string, logger logging.LoggerInterface) *FileSink {
	s := new(FileSink)

	s.path = path
	s.logger = logger

	return s
}

func (s *FileSink) DryRun() bool {
	return true
}

func (s *FileSink) Deliver(ctx context.Context, target Target, app *oaa.CustomApplication) ([]string, error) {
	if err := writePayload(s.path, app); err != nil {
		return nil, err
	}

	s.logger.Infof("dry run, wrote payload for %q to %s", target.ProviderName, s.path)

	return nil, nil
}

// NewSink picks the sink for a run: a file sink when dryRun is set, a Veza
// sink otherwise.
func NewSink(client veza.VezaInterface, dryRun bool, dryRunPath string, force bool, logger logging.LoggerInterface) (SinkInterface, error) {
	if dryRun {
		if dryRunPath == "" {
			return nil, fmt.Errorf("dry run requires an output path")
		}
		return NewFileSink(dryRunPath, logger), nil
	}
	return NewVezaSink(client, force, logger), nil
}
