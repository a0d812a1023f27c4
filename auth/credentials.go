package auth

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"os"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// ServiceAccountKey is the subset of a Google service account JSON key
// the token flow needs.
type ServiceAccountKey struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`

	parsedKey *rsa.PrivateKey
}

// LoadServiceAccountKey reads and parses a service account JSON key file.
func LoadServiceAccountKey(path string) (*ServiceAccountKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading service account key: %w", err)
	}
	return ParseServiceAccountKey(data)
}

// ParseServiceAccountKey parses service account JSON key bytes.
func ParseServiceAccountKey(data []byte) (*ServiceAccountKey, error) {
	var key ServiceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("parsing service account key: %w", err)
	}
	if key.Type != "service_account" {
		return nil, fmt.Errorf("unexpected credential type %q, want service_account", key.Type)
	}
	if key.ClientEmail == "" {
		return nil, fmt.Errorf("service account key is missing client_email")
	}
	if key.TokenURI == "" {
		key.TokenURI = "https://oauth2.googleapis.com/token"
	}

	parsed, err := gojwt.ParseRSAPrivateKeyFromPEM([]byte(key.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("parsing service account private key: %w", err)
	}
	key.parsedKey = parsed
	return &key, nil
}

// Signer returns the parsed RSA private key.
func (k *ServiceAccountKey) Signer() *rsa.PrivateKey {
	return k.parsedKey
}
