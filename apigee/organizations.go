package apigee

import "context"

// ListOrganizations lists the organizations visible to the configured
// credentials.
func (c *Client) ListOrganizations(ctx context.Context) (map[string]any, string, error) {
	return c.get(ctx, TargetOrganizations, "", "organizations", nil)
}

// GetOrganization fetches one organization. An empty org falls back to
// the configured default.
func (c *Client) GetOrganization(ctx context.Context, org string) (map[string]any, string, error) {
	if org == "" {
		org = c.org
	}
	return c.get(ctx, TargetOrganizations, org, "organizations/"+org, nil)
}
