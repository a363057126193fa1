// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package veza implements the Veza Open Authorization API client. It owns
// the provider and data source lifecycle and the metadata push endpoint the
// pipeline delivers payloads to.
package veza

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
	"github.com/canonical/oaa-sync/internal/rest"
	"github.com/canonical/oaa-sync/internal/tracing"
	"github.com/canonical/oaa-sync/pkg/oaa"
)

// ClientError is a structured rejection from the Veza API, carrying the
// per-field details the ingestion endpoint returns on payload validation
// failures.
type ClientError struct {
	Status  int
	Message string
	Details []string
}

func (e *ClientError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("veza api error (status %d): %s: %s", e.Status, e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("veza api error (status %d): %s", e.Status, e.Message)
}

type Config struct {
	URL    string
	APIKey string
}

func NewConfig(url, apiKey string) *Config {
	c := new(Config)

	c.URL = url
	c.APIKey = apiKey

	return c
}

var _ VezaInterface = (*Client)(nil)

type Client struct {
	baseURL string
	apiKey  string

	rest *rest.Client

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(config *Config, restClient *rest.Client, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*Client, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("veza url is not configured")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("veza api key is not configured")
	}

	c := new(Client)

	c.baseURL = strings.TrimRight(config.URL, "/")
	c.apiKey = config.APIKey
	c.rest = restClient
	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c, nil
}

// GetProvider looks a custom provider up by name. A missing provider is not
// an error, it returns nil so callers can decide to create it.
func (c *Client) GetProvider(ctx context.Context, name string) (*Provider, error) {
	ctx, span := c.tracer.Start(ctx, "veza.Client.GetProvider")
	defer span.End()

	var response struct {
		Values []Provider `json:"values"`
	}
	if _, err := c.rest.Get(ctx, c.baseURL+"/api/v1/providers/custom", c.headers(), nil, &response); err != nil {
		return nil, translateError(err)
	}

	for _, provider := range response.Values {
		if provider.Name == name {
			return &provider, nil
		}
	}

	return nil, nil
}

// CreateProvider registers a new custom provider with the given template.
func (c *Client) CreateProvider(ctx context.Context, name, customTemplate string) (*Provider, error) {
	ctx, span := c.tracer.Start(ctx, "veza.Client.CreateProvider")
	defer span.End()

	body := map[string]string{
		"name":            name,
		"custom_template": customTemplate,
	}

	var response struct {
		Value Provider `json:"value"`
	}
	if _, err := c.rest.PostJSON(ctx, c.baseURL+"/api/v1/providers/custom", c.headers(), body, &response); err != nil {
		return nil, translateError(err)
	}

	c.logger.Infof("created veza provider %q with id %s", name, response.Value.ID)

	return &response.Value, nil
}

// DeleteProvider removes a provider and all its data sources.
func (c *Client) DeleteProvider(ctx context.Context, id string) error {
	ctx, span := c.tracer.Start(ctx, "veza.Client.DeleteProvider")
	defer span.End()

	if _, err := c.rest.Delete(ctx, c.baseURL+"/api/v1/providers/custom/"+id, c.headers()); err != nil {
		return translateError(err)
	}

	return nil
}

// UpdateProviderIcon sets the base64-encoded icon shown for the provider in
// the Veza UI. Icon failures are cosmetic, callers typically log and move on.
func (c *Client) UpdateProviderIcon(ctx context.Context, id, iconB64 string) error {
	ctx, span := c.tracer.Start(ctx, "veza.Client.UpdateProviderIcon")
	defer span.End()

	body := map[string]string{"icon_base64": iconB64}
	if _, err := c.rest.PostJSON(ctx, c.baseURL+"/api/v1/providers/custom/"+id+"/icon", c.headers(), body, nil); err != nil {
		return translateError(err)
	}

	return nil
}

// GetOrCreateDataSource returns the named data source under the provider,
// creating it when absent.
func (c *Client) GetOrCreateDataSource(ctx context.Context, providerID, name string) (*DataSource, error) {
	ctx, span := c.tracer.Start(ctx, "veza.Client.GetOrCreateDataSource")
	defer span.End()

	var listResponse struct {
		Values []DataSource `json:"values"`
	}
	if _, err := c.rest.Get(ctx, c.dataSourcesURL(providerID), c.headers(), nil, &listResponse); err != nil {
		return nil, translateError(err)
	}

	for _, dataSource := range listResponse.Values {
		if dataSource.Name == name {
			return &dataSource, nil
		}
	}

	body := map[string]string{
		"name": name,
		"id":   providerID,
	}

	var createResponse struct {
		Value DataSource `json:"value"`
	}
	if _, err := c.rest.PostJSON(ctx, c.dataSourcesURL(providerID), c.headers(), body, &createResponse); err != nil {
		return nil, translateError(err)
	}

	c.logger.Infof("created veza data source %q under provider %s", name, providerID)

	return &createResponse.Value, nil
}

// PushApplication serializes the application payload and submits it to the
// ingestion endpoint, resolving the provider and data source first. The
// returned warnings are non-fatal payload issues reported by Veza.
func (c *Client) PushApplication(ctx context.Context, providerName, dataSourceName string, app *oaa.CustomApplication, createProvider bool) ([]string, error) {
	ctx, span := c.tracer.Start(ctx, "veza.Client.PushApplication")
	defer span.End()

	provider, err := c.GetProvider(ctx, providerName)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		if !createProvider {
			return nil, fmt.Errorf("provider %q does not exist", providerName)
		}
		provider, err = c.CreateProvider(ctx, providerName, "application")
		if err != nil {
			return nil, err
		}
	}

	dataSource, err := c.GetOrCreateDataSource(ctx, provider.ID, dataSourceName)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(app.GetPayload())
	if err != nil {
		return nil, fmt.Errorf("failed to serialize payload: %w", err)
	}

	body := map[string]string{
		"id":        dataSource.ID,
		"json_data": string(payload),
	}

	var response struct {
		Warnings []string `json:"warnings"`
	}
	pushURL := c.dataSourcesURL(provider.ID) + "/" + dataSource.ID + "/push"
	if _, err := c.rest.PostJSON(ctx, pushURL, c.headers(), body, &response); err != nil {
		return nil, translateError(err)
	}

	c.logger.Infof("pushed %d users and %d groups to veza data source %q", app.UserCount(), app.GroupCount(), dataSourceName)

	return response.Warnings, nil
}

func (c *Client) headers() http.Header {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+c.apiKey)
	return headers
}

func (c *Client) dataSourcesURL(providerID string) string {
	return c.baseURL + "/api/v1/providers/custom/" + providerID + "/datasources"
}

// translateError upgrades terminal HTTP errors into ClientError, pulling the
// message and details out of the structured error body when present.
func translateError(err error) error {
	httpErr := new(rest.HTTPError)
	if !errors.As(err, &httpErr) {
		return err
	}

	clientErr := &ClientError{Status: httpErr.Status, Message: httpErr.Body}

	var body struct {
		Message string `json:"message"`
		Details []struct {
			Message string `json:"message"`
		} `json:"details"`
	}
	if jsonErr := json.Unmarshal([]byte(httpErr.Body), &body); jsonErr == nil && body.Message != "" {
		clientErr.Message = body.Message
		for _, detail := range body.Details {
			clientErr.Details = append(clientErr.Details, detail.Message)
		}
	}

	return clientErr
}
