package apigee

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CreateDebugSession starts a trace session on a deployed proxy
// revision. timeoutSeconds of zero leaves the upstream default.
func (c *Client) CreateDebugSession(ctx context.Context, org, env, proxy, revision, session string, timeoutSeconds int) (map[string]any, string, error) {
	params := url.Values{"session": {session}}
	if timeoutSeconds > 0 {
		params.Set("timeout", strconv.Itoa(timeoutSeconds))
	}
	path := fmt.Sprintf("environments/%s/apis/%s/revisions/%s/debugsessions", env, proxy, revision)
	return c.post(ctx, TargetDebug, org, path, params, nil)
}

// GetDebugSessionData fetches the captured transactions of a trace session.
func (c *Client) GetDebugSessionData(ctx context.Context, org, env, proxy, revision, session string) (map[string]any, string, error) {
	path := fmt.Sprintf("environments/%s/apis/%s/revisions/%s/debugsessions/%s/data", env, proxy, revision, session)
	return c.get(ctx, TargetDebug, org, path, nil)
}
