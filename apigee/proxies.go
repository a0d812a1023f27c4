package apigee

import (
	"context"
	"fmt"
	"net/url"
)

// ListProxies lists the API proxies in an organization.
func (c *Client) ListProxies(ctx context.Context, org string, includeRevisions bool) (map[string]any, string, error) {
	var params url.Values
	if includeRevisions {
		params = url.Values{"includeRevisions": {"true"}}
	}
	return c.get(ctx, TargetProxies, org, "apis", params)
}

// GetProxy fetches one API proxy including its revision list.
func (c *Client) GetProxy(ctx context.Context, org, proxy string) (map[string]any, string, error) {
	return c.get(ctx, TargetProxies, org, "apis/"+proxy, nil)
}

// GetProxyRevision fetches one revision of an API proxy.
func (c *Client) GetProxyRevision(ctx context.Context, org, proxy, revision string) (map[string]any, string, error) {
	return c.get(ctx, TargetProxies, org, fmt.Sprintf("apis/%s/revisions/%s", proxy, revision), nil)
}

// DeployProxy deploys a proxy revision to an environment.
func (c *Client) DeployProxy(ctx context.Context, org, env, proxy, revision string, override bool) (map[string]any, string, error) {
	var params url.Values
	if override {
		params = url.Values{"override": {"true"}}
	}
	path := fmt.Sprintf("environments/%s/apis/%s/revisions/%s/deployments", env, proxy, revision)
	return c.post(ctx, TargetProxies, org, path, params, nil)
}

// UndeployProxy removes a proxy revision deployment from an environment.
func (c *Client) UndeployProxy(ctx context.Context, org, env, proxy, revision string) (map[string]any, string, error) {
	path := fmt.Sprintf("environments/%s/apis/%s/revisions/%s/deployments", env, proxy, revision)
	return c.delete(ctx, TargetProxies, org, path)
}
