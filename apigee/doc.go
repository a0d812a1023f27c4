// Package apigee is the HTTP client for the Apigee management API.
//
// Every call goes through the resilience layer: a per-category rate
// limiter and circuit breaker guard the upstream, and retryable
// failures are re-attempted with exponential backoff. Paths that do
// not name an organization are scoped to the configured one, matching
// the management API's organizations/{org}/... layout.
//
//	client, err := apigee.NewClient(cfg, tokenSource, invoker)
//	proxies, corrID, err := client.ListProxies(ctx, "", false)
//
// Upstream HTTP statuses are mapped onto the gateway's error taxonomy,
// so callers can branch on error kind without reading status codes.
package apigee
