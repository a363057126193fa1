// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package workboard implements the WorkBoard REST API client used by the
// sync pipeline. WorkBoard wraps every response in an envelope carrying a
// success flag, so an HTTP 200 can still be an API-level failure.
package workboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/canonical/oaa-sync/internal/logging"
	"github.com/canonical/oaa-sync/internal/monitoring"
	"github.com/canonical/oaa-sync/internal/rest"
	"github.com/canonical/oaa-sync/internal/tracing"
)

const defaultPageSize = 100

// APIError is an envelope-level failure: the API answered HTTP 200 with
// success set to false. These are terminal, retrying won't change them.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("workboard api error: %s", e.Message)
}

type Config struct {
	BaseURL  string
	Token    string
	PageSize int
}

func NewConfig(baseURL, token string, pageSize int) *Config {
	c := new(Config)

	c.BaseURL = baseURL
	c.Token = token
	c.PageSize = pageSize

	return c
}

var _ WorkBoardInterface = (*Client)(nil)

type Client struct {
	baseURL  string
	token    string
	pageSize int

	rest *rest.Client

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(config *Config, restClient *rest.Client, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("workboard base url is not configured")
	}
	if config.Token == "" {
		return nil, fmt.Errorf("workboard api token is not configured")
	}

	c := new(Client)

	c.baseURL = strings.TrimRight(config.BaseURL, "/")
	c.token = config.Token
	c.pageSize = config.PageSize
	if c.pageSize <= 0 {
		c.pageSize = defaultPageSize
	}
	c.rest = restClient
	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c, nil
}

// GetCurrentUser fetches the user the token belongs to. The pipeline calls
// this before paginating so that a bad token fails fast.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	ctx, span := c.tracer.Start(ctx, "workboard.Client.GetCurrentUser")
	defer span.End()

	var data struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, "/wb/apis/user", nil, &data); err != nil {
		return nil, err
	}

	return &data.User, nil
}

// ListUsers walks the paginated users collection until the API stops
// returning a cursor, accumulating every page.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	ctx, span := c.tracer.Start(ctx, "workboard.Client.ListUsers")
	defer span.End()

	users := make([]User, 0)
	cursor := ""

	for {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(c.pageSize))
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		var data struct {
			Users      []User `json:"users"`
			NextCursor string `json:"next_cursor"`
		}
		if err := c.get(ctx, "/wb/apis/users", query, &data); err != nil {
			return nil, err
		}

		users = append(users, data.Users...)
		c.logger.Debugf("fetched %d workboard users, total %d", len(data.Users), len(users))

		if data.NextCursor == "" || len(data.Users) == 0 {
			break
		}
		cursor = data.NextCursor
	}

	return users, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+c.token)

	var env struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}

	if _, err := c.rest.Get(ctx, c.baseURL+path, headers, query, &env); err != nil {
		return err
	}

	if !env.Success {
		return &APIError{Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &rest.DataIntegrityError{Err: err}
		}
	}

	return nil
}
