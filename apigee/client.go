package apigee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"apigee-gateway/auth"
	"apigee-gateway/errors"
	"apigee-gateway/logger"
	"apigee-gateway/resilience"
)

// Target keys partitioning resilience state by upstream category.
const (
	TargetOrganizations = "apigee.organizations"
	TargetEnvironments  = "apigee.environments"
	TargetProxies       = "apigee.proxies"
	TargetSharedFlows   = "apigee.sharedflows"
	TargetDevelopers    = "apigee.developers"
	TargetApps          = "apigee.apps"
	TargetProducts      = "apigee.products"
	TargetKeystores     = "apigee.keystores"
	TargetCompanies     = "apigee.companies"
	TargetDebug         = "apigee.debug"
)

// DefaultBaseURL is the public management API root.
const DefaultBaseURL = "https://apigee.googleapis.com/v1"

// maxResponseDetail caps how much of an upstream error body is carried
// in error details.
const maxResponseDetail = 200

// ClientConfig holds client construction parameters.
type ClientConfig struct {
	// BaseURL is the management API root without a trailing slash.
	BaseURL string
	// Organization scopes paths that do not name one.
	Organization string
	// ProxyURL optionally routes calls through a SOCKS5 or HTTP proxy.
	ProxyURL string
	// Timeout bounds a single HTTP exchange. The invoker separately
	// bounds the whole logical call including retries.
	Timeout time.Duration
}

// Client calls the Apigee management API through the resilience layer.
type Client struct {
	baseURL string
	org     string
	tokens  auth.TokenSource
	http    *http.Client
	invoker *resilience.Invoker
	log     *logger.Logger
}

// NewClient builds a management API client.
func NewClient(cfg ClientConfig, tokens auth.TokenSource, invoker *resilience.Invoker) (*Client, error) {
	if cfg.Organization == "" {
		return nil, errors.MissingParameter("organization")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	httpClient, err := NewHTTPClient(cfg.ProxyURL, cfg.Timeout)
	if err != nil {
		return nil, errors.Validation("invalid proxy configuration").WithCause(err)
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		org:     cfg.Organization,
		tokens:  tokens,
		http:    httpClient,
		invoker: invoker,
		log:     logger.WithComponent("apigee"),
	}, nil
}

// Organization returns the default organization calls are scoped to.
func (c *Client) Organization() string { return c.org }

// buildURL assembles the full request URL. Paths that do not already
// address an organization are scoped to org (or the default).
func (c *Client) buildURL(org, path string) string {
	path = strings.TrimLeft(path, "/")
	if path != "organizations" && !strings.HasPrefix(path, "organizations/") {
		if org == "" {
			org = c.org
		}
		path = "organizations/" + org + "/" + path
	}
	return c.baseURL + "/" + path
}

// do runs one management API call through the resilience layer and
// decodes the JSON response. It returns the correlation ID assigned to
// the call so callers can surface it alongside results.
func (c *Client) do(ctx context.Context, targetKey, method, org, path string, params url.Values, body any) (map[string]any, string, error) {
	fullURL := c.buildURL(org, path)
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", errors.Validation("encoding request body").WithCause(err)
		}
		payload = data
	}

	start := time.Now()
	data, corrID, err := resilience.Invoke(ctx, c.invoker, targetKey, func(ctx context.Context) (map[string]any, error) {
		return c.exchange(ctx, method, fullURL, payload)
	})

	log := c.log.WithCorrelationID(corrID)
	if err != nil {
		log.Error("api request failed", logger.Fields(
			logger.FieldOperation, method+" "+path,
			logger.FieldTargetKey, targetKey,
			logger.FieldError, err.Error(),
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
		return nil, corrID, err
	}

	log.Debug("api request", logger.Fields(
		logger.FieldOperation, method+" "+path,
		logger.FieldTargetKey, targetKey,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return data, corrID, nil
}

// exchange performs a single authenticated HTTP round trip.
func (c *Client) exchange(ctx context.Context, method, fullURL string, payload []byte) (map[string]any, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, errors.Unknown(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.ExternalService("apigee_api", fmt.Sprintf("request failed: %v", err), 0).WithCause(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, errors.ExternalService("apigee_api", "reading response body", resp.StatusCode).WithCause(err)
	}

	if resp.StatusCode >= 400 {
		return nil, classifyStatus(resp, string(respBody), fullURL)
	}

	if len(respBody) == 0 {
		return map[string]any{}, nil
	}
	var parsed map[string]any
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, errors.ExternalService("apigee_api", "decoding response body", resp.StatusCode).WithCause(err)
	}
	return parsed, nil
}

// classifyStatus maps an upstream HTTP error status onto the gateway's
// error taxonomy. Statuses below 500 that have no dedicated kind are
// reported as a 502 so transient upstream quirks stay retryable.
func classifyStatus(resp *http.Response, body, fullURL string) error {
	detail := body
	if len(detail) > maxResponseDetail {
		detail = detail[:maxResponseDetail]
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return errors.Authentication("API authentication failed").
			WithDetail("status", resp.StatusCode).
			WithDetail("url", fullURL)
	case http.StatusForbidden:
		return errors.Authorization("access to API resource denied", fullURL).
			WithDetail("status", resp.StatusCode)
	case http.StatusNotFound:
		return errors.NotFound("api_resource", fullURL).
			WithDetail("status", resp.StatusCode).
			WithDetail("response", detail)
	case http.StatusConflict:
		return errors.Conflict("api_resource", fullURL).
			WithDetail("status", resp.StatusCode).
			WithDetail("response", detail)
	case http.StatusRequestTimeout:
		return errors.Timeout(fullURL).
			WithDetail("status", resp.StatusCode)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errors.Validation("upstream rejected the request").
			WithDetail("status", resp.StatusCode).
			WithDetail("response", detail)
	case http.StatusTooManyRequests:
		return errors.RateLimited(retryAfterSeconds(resp)).
			WithDetail("status", resp.StatusCode)
	}

	status := resp.StatusCode
	if status < 500 {
		status = http.StatusBadGateway
	}
	return errors.ExternalService("apigee_api",
		fmt.Sprintf("API request failed with status %d", resp.StatusCode), status).
		WithDetail("status", resp.StatusCode).
		WithDetail("url", fullURL).
		WithDetail("response", detail)
}

func retryAfterSeconds(resp *http.Response) float64 {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil && secs >= 0 {
			return secs
		}
	}
	return 1
}

// get issues a GET request scoped to org.
func (c *Client) get(ctx context.Context, targetKey, org, path string, params url.Values) (map[string]any, string, error) {
	return c.do(ctx, targetKey, http.MethodGet, org, path, params, nil)
}

// post issues a POST request scoped to org.
func (c *Client) post(ctx context.Context, targetKey, org, path string, params url.Values, body any) (map[string]any, string, error) {
	return c.do(ctx, targetKey, http.MethodPost, org, path, params, body)
}

// delete issues a DELETE request scoped to org.
func (c *Client) delete(ctx context.Context, targetKey, org, path string) (map[string]any, string, error) {
	return c.do(ctx, targetKey, http.MethodDelete, org, path, nil, nil)
}

// expandParams builds the expand=true query used by several list calls.
func expandParams(expand bool) url.Values {
	if !expand {
		return nil
	}
	return url.Values{"expand": {"true"}}
}
