// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package sailpoint implements the SailPoint IdentityNow API client used by
// the sync pipeline. Authentication uses the OAuth 2.0 client credentials
// grant against the tenant token endpoint.
package sailpoint

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
	"github.com/canonical/oaa-sync/internal/rest"
	"github.com/canonical/oaa-sync/internal/tracing"
)

// maxPageSize is the hard cap the IdentityNow API puts on the limit param.
const maxPageSize = 250

// AuthenticationError is a failure to obtain an access token. Token endpoint
// rejections are terminal, callers must not retry them with the same
// credentials.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("sailpoint authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

type Config struct {
	Tenant       string
	BaseURL      string
	ClientID     string
	ClientSecret string
	PageSize     int
	Filters      string
	Sorters      string
}

func NewConfig(tenant, baseURL, clientID, clientSecret string, pageSize int, filters, sorters string) *Config {
	c := new(Config)

	c.Tenant = tenant
	c.BaseURL = baseURL
	c.ClientID = clientID
	c.ClientSecret = clientSecret
	c.PageSize = pageSize
	c.Filters = filters
	c.Sorters = sorters

	return c
}

var _ SailPointInterface = (*Client)(nil)

type Client struct {
	baseURL  string
	pageSize int
	filters  string
	sorters  string

	rest   *rest.Client
	tokens oauth2.TokenSource

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// NewClient validates the credentials and wires up the token source. BaseURL
// overrides the URL derived from the tenant name, which tests and private
// cloud deployments rely on.
func NewClient(config *Config, restClient *rest.Client, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*Client, error) {
	if config.Tenant == "" && config.BaseURL == "" {
		return nil, fmt.Errorf("sailpoint tenant is not configured")
	}
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, fmt.Errorf("sailpoint client credentials are not configured")
	}

	c := new(Client)

	c.baseURL = strings.TrimRight(config.BaseURL, "/")
	if c.baseURL == "" {
		c.baseURL = fmt.Sprintf("https://%s.api.identitynow.com", config.Tenant)
	}

	c.pageSize = config.PageSize
	if c.pageSize <= 0 || c.pageSize > maxPageSize {
		c.pageSize = maxPageSize
	}
	c.filters = config.Filters
	c.sorters = config.Sorters

	grant := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     c.baseURL + "/oauth/token",
		Scopes:       []string{"sp:scope:all"},
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	c.tokens = grant.TokenSource(context.Background())

	c.rest = restClient
	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c, nil
}

// ListPublicIdentities walks the public-identities collection with offset
// pagination, trusting the X-Total-Count header for termination.
func (c *Client) ListPublicIdentities(ctx context.Context) ([]PublicIdentity, error) {
	ctx, span := c.tracer.Start(ctx, "sailpoint.Client.ListPublicIdentities")
	defer span.End()

	token, err := c.tokens.Token()
	if err != nil {
		return nil, &AuthenticationError{Err: err}
	}
	c.logger.Debug("authenticated to sailpoint")

	headers := http.Header{}
	headers.Set("Authorization", token.Type()+" "+token.AccessToken)

	identities := make([]PublicIdentity, 0)
	offset := 0

	for {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(c.pageSize))
		query.Set("offset", strconv.Itoa(offset))
		query.Set("count", "true")
		if c.filters != "" {
			query.Set("filters", c.filters)
		}
		if c.sorters != "" {
			query.Set("sorters", c.sorters)
		}

		var page []PublicIdentity
		respHeaders, err := c.rest.Get(ctx, c.baseURL+"/v3/public-identities", headers, query, &page)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch identities at offset %d: %w", offset, err)
		}

		if len(page) == 0 {
			break
		}

		identities = append(identities, page...)
		offset += len(page)

		total, _ := strconv.Atoi(respHeaders.Get("X-Total-Count"))
		c.logger.Debugf("fetched %d sailpoint identities of %d", offset, total)

		if offset >= total {
			break
		}
	}

	return identities, nil
}
