// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/oaa-sync/internal/config"
	"github.com/canonical/oaa-sync/internal/db"
	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
	"github.com/canonical/oaa-sync/internal/monitoring/prometheus"
	"github.com/canonical/oaa-sync/internal/pipeline"
	"github.com/canonical/oaa-sync/internal/rest"
	"github.com/canonical/oaa-sync/internal/sailpoint"
	"github.com/canonical/oaa-sync/internal/storage"
	"github.com/canonical/oaa-sync/internal/tracing"
	"github.com/canonical/oaa-sync/internal/veza"
	"github.com/canonical/oaa-sync/internal/workboard"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a single connector sync against Veza",
	Long: `Fetch identities from a source system and push the resulting payload to
the Veza Open Authorization API.

Currently supported drivers:
  - workboard: pulls users from the WorkBoard API
  - sailpoint: pulls public identities from SailPoint IdentityNow

Example:
  oaa-sync sync --driver workboard
  oaa-sync sync --driver sailpoint --dry-run --dry-run-file payload.json`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSync(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Sync failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	syncCmd.Flags().String("driver", "", "Sync driver to use (workboard, sailpoint)")
	syncCmd.Flags().Bool("dry-run", false, "Write the payload to a file instead of pushing to Veza")
	syncCmd.Flags().String("dry-run-file", "", "Path of the payload file written in dry run mode")
	syncCmd.Flags().String("debug-dump", "", "Also write the payload to this path before delivery")
	syncCmd.Flags().Bool("force", false, "Delete and recreate the Veza provider before pushing")
	syncCmd.Flags().Bool("insecure-skip-verify", false, "Skip TLS certificate verification for the source system")
	syncCmd.Flags().String("dsn", "", "PostgreSQL DSN for the sync run audit trail")
	syncCmd.Flags().String("log-level", "", "Log level (debug, info, warn, error)")

	_ = syncCmd.MarkFlagRequired("driver")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command) error {
	driver, _ := cmd.Flags().GetString("driver")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	dryRunFile, _ := cmd.Flags().GetString("dry-run-file")
	debugDump, _ := cmd.Flags().GetString("debug-dump")
	force, _ := cmd.Flags().GetBool("force")
	insecure, _ := cmd.Flags().GetBool("insecure-skip-verify")
	dsn, _ := cmd.Flags().GetString("dsn")
	logLevel, _ := cmd.Flags().GetString("log-level")

	specs := new(config.EnvSpec)
	// best-effort env loading, flags take precedence
	_ = envconfig.Process("", specs)

	if logLevel == "" {
		logLevel = specs.LogLevel
	}
	if dsn == "" {
		dsn = specs.DSN
	}

	logger := logging.NewLogger(logLevel)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("oaa-sync", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(false, "", "", logger))

	syncDriver, err := buildDriver(driver, specs, insecure, tracer, monitor, logger)
	if err != nil {
		return err
	}

	sink, err := buildSink(specs, dryRun, dryRunFile, force, tracer, monitor, logger)
	if err != nil {
		return err
	}

	var runs pipeline.RunRecorderInterface
	if dsn != "" {
		dbClient := db.NewDBClient(db.NewConfig(dsn), tracer, monitor, logger)
		defer dbClient.Close()

		runs = storage.NewStorage(dbClient, tracer, monitor, logger)
	}

	connector := pipeline.NewConnector(syncDriver, sink, runs, tracer, monitor, logger)
	if debugDump != "" {
		connector.SetDebugDumpPath(debugDump)
	}

	result, err := connector.Run(context.Background())
	if err != nil {
		return err
	}

	logger.Infof(
		"sync completed: connector=%s users=%d groups=%d dry_run=%v warnings=%d",
		result.Connector, result.Users, result.Groups, result.DryRun, len(result.Warnings),
	)

	return nil
}

func buildDriver(
	name string,
	specs *config.EnvSpec,
	insecure bool,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (pipeline.DriverInterface, error) {
	restClient := rest.NewClient(rest.NewConfig(
		specs.HTTPTimeout,
		specs.RetryMaxAttempts,
		insecure || specs.SourceInsecureSkipVerify,
		logger,
	))

	switch name {
	case "workboard":
		client, err := workboard.NewClient(
			workboard.NewConfig(specs.WorkboardURL, specs.WorkboardToken, specs.WorkboardPageSize),
			restClient,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("workboard driver requires WORKBOARD_URL and WORKBOARD_TOKEN: %v", err)
		}

		return pipeline.NewWorkBoardDriver(client, specs.WorkboardURL, logger), nil
	case "sailpoint":
		client, err := sailpoint.NewClient(
			sailpoint.NewConfig(
				specs.SailpointTenant,
				specs.SailpointBaseURL,
				specs.SailpointClientID,
				specs.SailpointClientSecret,
				specs.SailpointPageSize,
				specs.SailpointFilters,
				specs.SailpointSorters,
			),
			restClient,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("sailpoint driver requires SAILPOINT_TENANT (or SAILPOINT_BASE_URL), SAILPOINT_CLIENT_ID and SAILPOINT_CLIENT_SECRET: %v", err)
		}

		return pipeline.NewSailPointDriver(client, sailpointLabel(specs), logger), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %q (supported: workboard, sailpoint)", name)
	}
}

func buildSink(
	specs *config.EnvSpec,
	dryRun bool,
	dryRunFile string,
	force bool,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (pipeline.SinkInterface, error) {
	var vezaClient veza.VezaInterface = veza.NewNoopClient()

	if !dryRun {
		restClient := rest.NewClient(rest.NewConfig(
			specs.HTTPTimeout,
			specs.RetryMaxAttempts,
			specs.VezaInsecureSkipVerify,
			logger,
		))

		client, err := veza.NewClient(
			veza.NewConfig(specs.VezaURL, specs.VezaAPIKey),
			restClient,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("veza push requires VEZA_URL and VEZA_API_KEY: %v", err)
		}
		vezaClient = client
	}

	return pipeline.NewSink(vezaClient, dryRun, dryRunFile, force, logger)
}

// sailpointLabel is the human readable tenant name used in the Veza data
// source, derived from the base URL when no tenant is configured.
func sailpointLabel(specs *config.EnvSpec) string {
	if specs.SailpointTenant != "" {
		return specs.SailpointTenant
	}

	label := strings.TrimRight(specs.SailpointBaseURL, "/")
	if _, host, ok := strings.Cut(label, "//"); ok {
		label = host
	}

	return label
}
