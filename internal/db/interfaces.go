// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

type DBClientInterface interface {
	Statement(ctx context.Context) sq.StatementBuilderType
	RawDB() *sql.DB
	Ping(ctx context.Context) error
	Close() error
}
