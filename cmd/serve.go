// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/oaa-sync/internal/config"
	"github.com/canonical/oaa-sync/internal/db"
	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring/prometheus"
	"github.com/canonical/oaa-sync/internal/pipeline"
	"github.com/canonical/oaa-sync/internal/rest"
	"github.com/canonical/oaa-sync/internal/sailpoint"
	"github.com/canonical/oaa-sync/internal/storage"
	"github.com/canonical/oaa-sync/internal/tracing"
	"github.com/canonical/oaa-sync/internal/veza"
	"github.com/canonical/oaa-sync/internal/workboard"
	"github.com/canonical/oaa-sync/pkg/authentication"
	"github.com/canonical/oaa-sync/pkg/syncs"
	"github.com/canonical/oaa-sync/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("oaa-sync", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	var s storage.StorageInterface
	var runs pipeline.RunRecorderInterface
	if specs.DSN != "" {
		dbClient := db.NewDBClient(db.NewConfig(specs.DSN), tracer, monitor, logger)
		defer dbClient.Close()

		store := storage.NewStorage(dbClient, tracer, monitor, logger)
		s = store
		runs = store
	} else {
		logger.Info("DSN is not set, sync runs will not be recorded")
	}

	vezaREST := rest.NewClient(rest.NewConfig(specs.HTTPTimeout, specs.RetryMaxAttempts, specs.VezaInsecureSkipVerify, logger))
	vezaClient, err := veza.NewClient(veza.NewConfig(specs.VezaURL, specs.VezaAPIKey), vezaREST, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create veza client: %v", err)
	}
	sink := pipeline.NewVezaSink(vezaClient, false, logger)

	sourceREST := rest.NewClient(rest.NewConfig(specs.HTTPTimeout, specs.RetryMaxAttempts, specs.SourceInsecureSkipVerify, logger))

	connectors := map[string]syncs.ConnectorInterface{}

	if specs.WorkboardURL != "" {
		wb, err := workboard.NewClient(
			workboard.NewConfig(specs.WorkboardURL, specs.WorkboardToken, specs.WorkboardPageSize),
			sourceREST,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to create workboard client: %v", err)
		}

		connectors["workboard"] = pipeline.NewConnector(
			pipeline.NewWorkBoardDriver(wb, specs.WorkboardURL, logger),
			sink,
			runs,
			tracer,
			monitor,
			logger,
		)
	}

	if specs.SailpointTenant != "" || specs.SailpointBaseURL != "" {
		sp, err := sailpoint.NewClient(
			sailpoint.NewConfig(
				specs.SailpointTenant,
				specs.SailpointBaseURL,
				specs.SailpointClientID,
				specs.SailpointClientSecret,
				specs.SailpointPageSize,
				specs.SailpointFilters,
				specs.SailpointSorters,
			),
			sourceREST,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to create sailpoint client: %v", err)
		}

		connectors["sailpoint"] = pipeline.NewConnector(
			pipeline.NewSailPointDriver(sp, sailpointLabel(specs), logger),
			sink,
			runs,
			tracer,
			monitor,
			logger,
		)
	}

	if len(connectors) == 0 {
		logger.Warn("no connectors configured, only status and metrics endpoints will serve")
	}

	jwtVerifier, err := authentication.NewJWTAuthenticator(
		context.Background(),
		specs.AuthenticationEnabled,
		specs.AuthenticationIssuer,
		specs.AuthenticationJwksURL,
		tracer,
		monitor,
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to setup JWT authenticator: %v", err)
	}

	router := web.NewRouter(
		specs.ApiToken,
		specs.AuthenticationEnabled,
		connectors,
		s,
		jwtVerifier,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("Shutting down server")
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
