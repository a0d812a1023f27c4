package config

import (
	"fmt"
	"strings"

	"apigee-gateway/logger"
	"apigee-gateway/resilience"
)

// Config is the root gateway configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	Logging    logger.Config     `yaml:"logging" mapstructure:"logging"`
	Server     ServerConfig      `yaml:"server" mapstructure:"server"`
	Apigee     ApigeeConfig      `yaml:"apigee" mapstructure:"apigee"`
	Resilience resilience.Config `yaml:"resilience" mapstructure:"resilience"`
	Telemetry  TelemetryConfig   `yaml:"telemetry" mapstructure:"telemetry"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string `yaml:"host" mapstructure:"host"`
	Port         int    `yaml:"port" mapstructure:"port"`
	ReadTimeout  int    `yaml:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int    `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int    `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds
}

// ApigeeConfig holds the upstream management API settings.
type ApigeeConfig struct {
	// BaseURL is the management API root, without a trailing slash.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Organization is the Apigee organization all calls are scoped to.
	Organization string `yaml:"organization" mapstructure:"organization"`
	// CredentialsFile points at a Google service account JSON key.
	CredentialsFile string `yaml:"credentials_file" mapstructure:"credentials_file"`
	// AccessToken bypasses the service account flow when set. Intended
	// for local development with a token minted by gcloud.
	AccessToken string `yaml:"access_token" mapstructure:"access_token"`
	// ProxyURL routes outbound calls through a SOCKS5 or HTTP proxy
	// when set, e.g. "socks5://localhost:1080".
	ProxyURL string `yaml:"proxy_url" mapstructure:"proxy_url"`
}

// TelemetryConfig holds OTLP exporter settings.
type TelemetryConfig struct {
	Enabled         bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint        string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure        bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate      float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
	IntervalSeconds int     `yaml:"interval_seconds" mapstructure:"interval_seconds"`
}

// ApplyDefaults applies default values to all sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "apigee-gateway"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Apigee.ApplyDefaults()
	c.Resilience.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate validates all sections.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Apigee.Validate(); err != nil {
		return err
	}
	return c.Telemetry.Validate()
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *ServerConfig) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
}

// Validate checks the server configuration for invalid values.
func (c *ServerConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535 (got: %d)", c.Port)
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.IdleTimeout < 0 {
		return fmt.Errorf("server timeouts must be non-negative")
	}
	return nil
}

// ApplyDefaults sets the public management API endpoint when unset.
func (c *ApigeeConfig) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://apigee.googleapis.com/v1"
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
}

// Validate checks the upstream API configuration.
func (c *ApigeeConfig) Validate() error {
	if c.Organization == "" {
		return fmt.Errorf("apigee.organization is required")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("apigee.base_url must be an http(s) URL (got: %s)", c.BaseURL)
	}
	if c.CredentialsFile == "" && c.AccessToken == "" {
		return fmt.Errorf("apigee.credentials_file or apigee.access_token is required")
	}
	if c.ProxyURL != "" &&
		!strings.HasPrefix(c.ProxyURL, "socks5://") &&
		!strings.HasPrefix(c.ProxyURL, "http://") &&
		!strings.HasPrefix(c.ProxyURL, "https://") {
		return fmt.Errorf("apigee.proxy_url must be a socks5:// or http(s):// URL (got: %s)", c.ProxyURL)
	}
	return nil
}

// ApplyDefaults sets development-friendly exporter defaults.
func (c *TelemetryConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.IntervalSeconds == 0 {
		c.IntervalSeconds = 15
	}
}

// Validate checks the telemetry configuration.
func (c *TelemetryConfig) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("telemetry.sample_rate must be between 0 and 1 (got: %g)", c.SampleRate)
	}
	if c.IntervalSeconds < 0 {
		return fmt.Errorf("telemetry.interval_seconds must be non-negative (got: %d)", c.IntervalSeconds)
	}
	return nil
}
