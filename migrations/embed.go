// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package migrations holds the goose SQL migrations for the sync run audit
// schema.
package migrations

import "embed"

//go:embed *.sql
var EmbedMigrations embed.FS
