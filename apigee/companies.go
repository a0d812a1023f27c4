package apigee

import (
	"context"

	"apigee-gateway/validation"
)

// Company is the payload for creating a company.
type Company struct {
	Name        string `json:"name" validate:"required,max=100"`
	DisplayName string `json:"displayName,omitempty"`
}

// ListCompanies lists the companies in an organization.
func (c *Client) ListCompanies(ctx context.Context, org string, expand bool) (map[string]any, string, error) {
	return c.get(ctx, TargetCompanies, org, "companies", expandParams(expand))
}

// GetCompany fetches one company.
func (c *Client) GetCompany(ctx context.Context, org, company string) (map[string]any, string, error) {
	return c.get(ctx, TargetCompanies, org, "companies/"+company, nil)
}

// CreateCompany creates a company.
func (c *Client) CreateCompany(ctx context.Context, org string, company Company) (map[string]any, string, error) {
	if err := validation.Validate(company); err != nil {
		return nil, "", err
	}
	if company.DisplayName == "" {
		company.DisplayName = company.Name
	}
	return c.post(ctx, TargetCompanies, org, "companies", nil, company)
}
