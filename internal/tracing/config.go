// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"github.com/canonical/oaa-sync/internal/logging"
)

type Config struct {
	Enabled      bool
	GRPCEndpoint string
	HTTPEndpoint string

	Logger logging.LoggerInterface
}

func NewConfig(enabled bool, grpcEndpoint, httpEndpoint string, logger logging.LoggerInterface) *Config {
	c := new(Config)

	c.Enabled = enabled
	c.GRPCEndpoint = grpcEndpoint
	c.HTTPEndpoint = httpEndpoint
	c.Logger = logger

	return c
}
