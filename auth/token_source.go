package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"apigee-gateway/errors"
)

// Scope required for the Apigee management API.
const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// expirySkew is how early a cached token is considered stale.
const expirySkew = 60 * time.Second

// TokenSource yields access tokens for outbound management API calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a fixed token. Used for local development
// with a gcloud-minted token, and in tests.
type StaticTokenSource struct {
	AccessToken string
}

func (s *StaticTokenSource) Token(ctx context.Context) (string, error) {
	if s.AccessToken == "" {
		return "", errors.Authentication("no access token configured")
	}
	return s.AccessToken, nil
}

// ServiceAccountTokenSource exchanges a signed JWT assertion for an
// access token and caches it until expiry.
type ServiceAccountTokenSource struct {
	key    *ServiceAccountKey
	scope  string
	client *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time

	// now is swappable in tests.
	now func() time.Time
}

// NewServiceAccountTokenSource loads a key file and builds a token
// source. A nil client falls back to a default with a 30s timeout.
func NewServiceAccountTokenSource(credentialsFile string, client *http.Client) (*ServiceAccountTokenSource, error) {
	key, err := LoadServiceAccountKey(credentialsFile)
	if err != nil {
		return nil, err
	}
	return NewTokenSourceFromKey(key, client), nil
}

// NewTokenSourceFromKey builds a token source from an already parsed key.
func NewTokenSourceFromKey(key *ServiceAccountKey, client *http.Client) *ServiceAccountTokenSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ServiceAccountTokenSource{
		key:    key,
		scope:  CloudPlatformScope,
		client: client,
		now:    time.Now,
	}
}

// Token returns a cached access token, refreshing it when stale.
func (s *ServiceAccountTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.now().Add(expirySkew).Before(s.expires) {
		return s.token, nil
	}

	token, expiresIn, err := s.exchange(ctx)
	if err != nil {
		return "", err
	}
	s.token = token
	s.expires = s.now().Add(time.Duration(expiresIn) * time.Second)
	return s.token, nil
}

// exchange signs a JWT assertion and posts it to the token endpoint.
func (s *ServiceAccountTokenSource) exchange(ctx context.Context) (string, int, error) {
	assertion, err := s.assertion()
	if err != nil {
		return "", 0, errors.Authentication("signing token assertion").WithCause(err)
	}

	form := url.Values{
		"grant_type": {"urn:ietf:params:oauth:grant-type:jwt-bearer"},
		"assertion":  {assertion},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.key.TokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, errors.Authentication("building token request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", 0, errors.ExternalService("oauth", "token exchange failed", 0).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", 0, errors.ExternalService("oauth", "reading token response", resp.StatusCode).WithCause(err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", 0, errors.Authentication(fmt.Sprintf("token endpoint returned status %d", resp.StatusCode)).
			WithDetail("status", resp.StatusCode)
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", 0, errors.Authentication("parsing token response").WithCause(err)
	}
	if tr.AccessToken == "" {
		return "", 0, errors.Authentication("token endpoint returned no access token")
	}
	if tr.ExpiresIn <= 0 {
		tr.ExpiresIn = 3600
	}
	return tr.AccessToken, tr.ExpiresIn, nil
}

// assertion builds the RS256-signed JWT the token endpoint expects.
func (s *ServiceAccountTokenSource) assertion() (string, error) {
	now := s.now()
	claims := gojwt.MapClaims{
		"iss":   s.key.ClientEmail,
		"scope": s.scope,
		"aud":   s.key.TokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	token := gojwt.NewWithClaims(gojwt.SigningMethodRS256, claims)
	return token.SignedString(s.key.Signer())
}
