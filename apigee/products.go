package apigee

import (
	"context"

	"apigee-gateway/validation"
)

// APIProduct is the payload for creating an API product.
type APIProduct struct {
	Name          string   `json:"name" validate:"required,max=100"`
	DisplayName   string   `json:"displayName,omitempty"`
	Description   string   `json:"description,omitempty"`
	ApprovalType  string   `json:"approvalType,omitempty" validate:"omitempty,oneof=auto manual"`
	Proxies       []string `json:"proxies"`
	Environments  []string `json:"environments"`
	APIResources  []string `json:"apiResources"`
	Quota         string   `json:"quota,omitempty"`
	QuotaInterval string   `json:"quotaInterval,omitempty"`
	QuotaTimeUnit string   `json:"quotaTimeUnit,omitempty"`
}

// ListProducts lists the API products in an organization.
func (c *Client) ListProducts(ctx context.Context, org string, expand bool) (map[string]any, string, error) {
	return c.get(ctx, TargetProducts, org, "apiproducts", expandParams(expand))
}

// GetProduct fetches one API product.
func (c *Client) GetProduct(ctx context.Context, org, product string) (map[string]any, string, error) {
	return c.get(ctx, TargetProducts, org, "apiproducts/"+product, nil)
}

// CreateProduct creates an API product. Unset fields get the
// management API's conventional defaults; quota interval and time unit
// only apply when a quota is set.
func (c *Client) CreateProduct(ctx context.Context, org string, product APIProduct) (map[string]any, string, error) {
	if err := validation.Validate(product); err != nil {
		return nil, "", err
	}
	if product.DisplayName == "" {
		product.DisplayName = product.Name
	}
	if product.ApprovalType == "" {
		product.ApprovalType = "auto"
	}
	if product.Proxies == nil {
		product.Proxies = []string{}
	}
	if product.Environments == nil {
		product.Environments = []string{}
	}
	if product.APIResources == nil {
		product.APIResources = []string{"/**"}
	}
	if product.Quota != "" {
		if product.QuotaInterval == "" {
			product.QuotaInterval = "1"
		}
		if product.QuotaTimeUnit == "" {
			product.QuotaTimeUnit = "day"
		}
	}
	return c.post(ctx, TargetProducts, org, "apiproducts", nil, product)
}
