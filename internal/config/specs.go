// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import "time"

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"false"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	ApiToken string `envconfig:"api_token" default:""`

	AuthenticationEnabled bool   `envconfig:"authentication_enabled" default:"false"`
	AuthenticationIssuer  string `envconfig:"authentication_issuer" default:""`
	AuthenticationJwksURL string `envconfig:"authentication_jwks_url" default:""`

	VezaURL                string `envconfig:"veza_url"`
	VezaAPIKey             string `envconfig:"veza_api_key"`
	VezaInsecureSkipVerify bool   `envconfig:"veza_insecure_skip_verify" default:"false"`

	WorkboardURL      string `envconfig:"workboard_url"`
	WorkboardToken    string `envconfig:"workboard_token"`
	WorkboardPageSize int    `envconfig:"workboard_page_size" default:"100"`

	SailpointTenant       string `envconfig:"sailpoint_tenant"`
	SailpointBaseURL      string `envconfig:"sailpoint_base_url" default:""`
	SailpointClientID     string `envconfig:"sailpoint_client_id"`
	SailpointClientSecret string `envconfig:"sailpoint_client_secret"`
	SailpointPageSize     int    `envconfig:"sailpoint_page_size" default:"250"`
	SailpointFilters      string `envconfig:"sailpoint_filters" default:""`
	SailpointSorters      string `envconfig:"sailpoint_sorters" default:""`

	SourceInsecureSkipVerify bool `envconfig:"source_insecure_skip_verify" default:"false"`

	HTTPTimeout      time.Duration `envconfig:"http_timeout" default:"30s"`
	RetryMaxAttempts int           `envconfig:"retry_max_attempts" default:"5"`

	DSN string `envconfig:"DSN" default:""`
}
