// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/oaa-sync/internal/logging"
)

const maxErrorBodySize = 4 << 10

type Config struct {
	Timeout            time.Duration
	MaxAttempts        int
	InsecureSkipVerify bool

	Logger logging.LoggerInterface
}

func NewConfig(timeout time.Duration, maxAttempts int, insecureSkipVerify bool, logger logging.LoggerInterface) *Config {
	c := new(Config)

	c.Timeout = timeout
	c.MaxAttempts = maxAttempts
	c.InsecureSkipVerify = insecureSkipVerify
	c.Logger = logger

	return c
}

// Client is a retrying JSON HTTP client shared by the source and sink
// clients. Every call blocks until a response, a terminal error, or the
// retry budget is spent. Only read-style, idempotent calls belong here.
type Client struct {
	http  *http.Client
	retry *RetryPolicy

	logger logging.LoggerInterface
}

func NewClient(config *Config) *Client {
	c := new(Client)

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if config.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		config.Logger.Warn("TLS certificate verification is disabled, this is not recommended for production")
	}

	c.http = &http.Client{
		Timeout:   config.Timeout,
		Transport: otelhttp.NewTransport(transport),
	}
	c.retry = NewRetryPolicy(config.MaxAttempts)
	c.logger = config.Logger

	return c
}

// Get issues a GET request and decodes the JSON response into out.
// The response headers are returned for pagination bookkeeping.
func (c *Client) Get(ctx context.Context, rawURL string, headers http.Header, query url.Values, out any) (http.Header, error) {
	return c.do(ctx, http.MethodGet, rawURL, headers, query, nil, "", out)
}

// PostJSON issues a POST request with a JSON body and decodes the JSON
// response into out.
func (c *Client) PostJSON(ctx context.Context, rawURL string, headers http.Header, body any, out any) (http.Header, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, rawURL, headers, nil, payload, "application/json", out)
}

// PostForm issues a POST request with a form-encoded body and decodes the
// JSON response into out.
func (c *Client) PostForm(ctx context.Context, rawURL string, headers http.Header, form url.Values, out any) (http.Header, error) {
	return c.do(ctx, http.MethodPost, rawURL, headers, nil, []byte(form.Encode()), "application/x-www-form-urlencoded", out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, rawURL string, headers http.Header) (http.Header, error) {
	return c.do(ctx, http.MethodDelete, rawURL, headers, nil, nil, "", nil)
}

func (c *Client) do(ctx context.Context, method, rawURL string, headers http.Header, query url.Values, body []byte, contentType string, out any) (http.Header, error) {
	var respHeader http.Header

	err := c.retry.Execute(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader(body))
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}

		for key, values := range headers {
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		req.Header.Set("Accept", "application/json")
		if query != nil {
			req.URL.RawQuery = query.Encode()
		}

		resp, err := c.http.Do(req)
		if err != nil {
			// Transport failures (timeouts, refused connections) are
			// transient, the retry policy owns the attempt budget.
			return &TransientError{Err: err}
		}
		defer resp.Body.Close()

		if IsRetryableStatus(resp.StatusCode) {
			io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))
			return &TransientError{Status: resp.StatusCode, Err: fmt.Errorf("%s %s failed", method, req.URL.Path)}
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
			return &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		}

		respHeader = resp.Header

		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &DataIntegrityError{Err: err}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return respHeader, nil
}

func bodyReader(body []byte) io.Reader {
	if body == nil {
		return nil
	}
	return bytes.NewReader(body)
}
