package apigee

import (
	"context"
	"strings"

	"apigee-gateway/validation"
)

// Developer is the payload for registering a developer.
type Developer struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	UserName  string `json:"userName,omitempty"`
}

// DeveloperApp is the payload for creating a developer app.
type DeveloperApp struct {
	Name        string   `json:"name" validate:"required,max=100"`
	APIProducts []string `json:"apiProducts"`
	CallbackURL string   `json:"callbackUrl,omitempty"`
}

// ListDevelopers lists the developers registered in an organization.
func (c *Client) ListDevelopers(ctx context.Context, org string, expand bool) (map[string]any, string, error) {
	return c.get(ctx, TargetDevelopers, org, "developers", expandParams(expand))
}

// GetDeveloper fetches one developer by email or ID.
func (c *Client) GetDeveloper(ctx context.Context, org, developer string) (map[string]any, string, error) {
	return c.get(ctx, TargetDevelopers, org, "developers/"+developer, nil)
}

// CreateDeveloper registers a developer. The username defaults to the
// local part of the email.
func (c *Client) CreateDeveloper(ctx context.Context, org string, dev Developer) (map[string]any, string, error) {
	if err := validation.Validate(dev); err != nil {
		return nil, "", err
	}
	if dev.UserName == "" {
		dev.UserName, _, _ = strings.Cut(dev.Email, "@")
	}
	return c.post(ctx, TargetDevelopers, org, "developers", nil, dev)
}

// ListDeveloperApps lists a developer's apps.
func (c *Client) ListDeveloperApps(ctx context.Context, org, developer string, expand bool) (map[string]any, string, error) {
	return c.get(ctx, TargetApps, org, "developers/"+developer+"/apps", expandParams(expand))
}

// GetDeveloperApp fetches one developer app.
func (c *Client) GetDeveloperApp(ctx context.Context, org, developer, app string) (map[string]any, string, error) {
	return c.get(ctx, TargetApps, org, "developers/"+developer+"/apps/"+app, nil)
}

// CreateDeveloperApp creates an app under a developer.
func (c *Client) CreateDeveloperApp(ctx context.Context, org, developer string, app DeveloperApp) (map[string]any, string, error) {
	if err := validation.Validate(app); err != nil {
		return nil, "", err
	}
	if app.APIProducts == nil {
		app.APIProducts = []string{}
	}
	return c.post(ctx, TargetApps, org, "developers/"+developer+"/apps", nil, app)
}
