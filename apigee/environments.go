package apigee

import (
	"context"

	"apigee-gateway/validation"
)

// Environment is the payload for creating an environment.
type Environment struct {
	Name        string `json:"name" validate:"required,max=100"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty" validate:"omitempty,oneof=PRODUCTION NON_PRODUCTION"`
}

// ListEnvironments lists the environments in an organization.
func (c *Client) ListEnvironments(ctx context.Context, org string) (map[string]any, string, error) {
	return c.get(ctx, TargetEnvironments, org, "environments", nil)
}

// GetEnvironment fetches one environment.
func (c *Client) GetEnvironment(ctx context.Context, org, env string) (map[string]any, string, error) {
	return c.get(ctx, TargetEnvironments, org, "environments/"+env, nil)
}

// CreateEnvironment creates an environment. Missing optional fields
// get the management API's conventional defaults.
func (c *Client) CreateEnvironment(ctx context.Context, org string, env Environment) (map[string]any, string, error) {
	if err := validation.Validate(env); err != nil {
		return nil, "", err
	}
	if env.DisplayName == "" {
		env.DisplayName = env.Name
	}
	if env.Type == "" {
		env.Type = "NON_PRODUCTION"
	}
	return c.post(ctx, TargetEnvironments, org, "environments", nil, env)
}
