package apigee

import (
	"context"
	"fmt"
)

// ListKeystores lists the keystores in an environment.
func (c *Client) ListKeystores(ctx context.Context, org, env string) (map[string]any, string, error) {
	return c.get(ctx, TargetKeystores, org, fmt.Sprintf("environments/%s/keystores", env), nil)
}

// GetKeystore fetches one keystore.
func (c *Client) GetKeystore(ctx context.Context, org, env, keystore string) (map[string]any, string, error) {
	return c.get(ctx, TargetKeystores, org, fmt.Sprintf("environments/%s/keystores/%s", env, keystore), nil)
}

// ListKeystoreAliases lists the aliases in a keystore.
func (c *Client) ListKeystoreAliases(ctx context.Context, org, env, keystore string) (map[string]any, string, error) {
	return c.get(ctx, TargetKeystores, org, fmt.Sprintf("environments/%s/keystores/%s/aliases", env, keystore), nil)
}

// GetKeystoreAlias fetches one keystore alias.
func (c *Client) GetKeystoreAlias(ctx context.Context, org, env, keystore, alias string) (map[string]any, string, error) {
	return c.get(ctx, TargetKeystores, org, fmt.Sprintf("environments/%s/keystores/%s/aliases/%s", env, keystore, alias), nil)
}
