package apigee

import (
	"context"
	"fmt"
	"net/url"
)

// ListSharedFlows lists the shared flows in an organization.
func (c *Client) ListSharedFlows(ctx context.Context, org string, includeRevisions bool) (map[string]any, string, error) {
	var params url.Values
	if includeRevisions {
		params = url.Values{"includeRevisions": {"true"}}
	}
	return c.get(ctx, TargetSharedFlows, org, "sharedflows", params)
}

// GetSharedFlow fetches one shared flow.
func (c *Client) GetSharedFlow(ctx context.Context, org, sharedFlow string) (map[string]any, string, error) {
	return c.get(ctx, TargetSharedFlows, org, "sharedflows/"+sharedFlow, nil)
}

// DeploySharedFlow deploys a shared flow revision to an environment.
func (c *Client) DeploySharedFlow(ctx context.Context, org, env, sharedFlow, revision string) (map[string]any, string, error) {
	path := fmt.Sprintf("environments/%s/sharedflows/%s/revisions/%s/deployments", env, sharedFlow, revision)
	return c.post(ctx, TargetSharedFlows, org, path, nil, nil)
}
