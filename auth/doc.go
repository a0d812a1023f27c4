// Package auth obtains OAuth2 access tokens for the Apigee management
// API from a Google service account key.
//
// The service account flow signs an RS256 JWT assertion with the key's
// private key and exchanges it at the key's token URI. Tokens are
// cached until shortly before expiry, so callers can request a token
// per outbound call without hammering the token endpoint.
//
//	source, err := auth.NewServiceAccountTokenSource("/path/key.json", nil)
//	token, err := source.Token(ctx)
//
// A StaticTokenSource covers local development with a token minted by
// gcloud, and tests.
package auth
