// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package db wraps the postgres connection pool behind a squirrel statement
// builder. The database is optional, it only backs the sync run audit trail.
package db

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
	"github.com/canonical/oaa-sync/internal/tracing"
)

type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func NewConfig(dsn string) *Config {
	c := new(Config)

	c.DSN = dsn
	c.MaxOpenConns = 10
	c.MaxIdleConns = 5
	c.ConnMaxLifetime = 30 * time.Minute

	return c
}

var _ DBClientInterface = (*DBClient)(nil)

type DBClient struct {
	db      *sql.DB
	builder sq.StatementBuilderType

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewDBClient(config *Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *DBClient {
	c := new(DBClient)

	db, err := sql.Open("pgx", config.DSN)
	if err != nil {
		logger.Fatalf("failed to open database connection: %v", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	c.db = db
	c.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(db)
	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}

// Statement returns the squirrel builder bound to the pool. Callers chain
// the query off it and execute with the context variants.
func (c *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	return c.builder
}

// RawDB exposes the underlying pool for the migration tooling.
func (c *DBClient) RawDB() *sql.DB {
	return c.db
}

func (c *DBClient) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *DBClient) Close() error {
	return c.db.Close()
}
