package logger

import (
	"os"
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("gateway")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "gateway" {
		t.Errorf("expected service 'gateway', got %q", l.service)
	}
}

func TestNew(t *testing.T) {
	cfg := &Config{
		Level:  "debug",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "gateway")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "gateway")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_LEVEL")
	defer os.Unsetenv("LOG_FORMAT")

	l := NewFromEnv("gateway")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestWithComponent(t *testing.T) {
	l := NewDefault("gateway").WithComponent("resilience")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestWithCorrelationID(t *testing.T) {
	base := NewDefault("gateway")
	l := base.WithCorrelationID("abc-123")
	if l == base {
		t.Error("expected a derived logger for a non-empty correlation ID")
	}
	if got := base.WithCorrelationID(""); got != base {
		t.Error("expected the same logger for an empty correlation ID")
	}
}

func TestWithFields(t *testing.T) {
	l := NewDefault("gateway").WithFields(map[string]interface{}{
		"target_key": "apigee.proxies",
		"attempt":    2,
	})
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected default output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamps enabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Level: "info", Format: "json"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg = Config{Level: "loud", Format: "json"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid level")
	}

	cfg = Config{Level: "info", Format: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestFields(t *testing.T) {
	m := Fields("op", "deploy", "revision", 3)
	if m["op"] != "deploy" {
		t.Errorf("expected op=deploy, got %v", m["op"])
	}
	if m["revision"] != 3 {
		t.Errorf("expected revision=3, got %v", m["revision"])
	}

	// Dangling value is dropped.
	m = Fields("only-key")
	if len(m) != 0 {
		t.Errorf("expected empty map, got %v", m)
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("fetch", 1500*time.Millisecond)
	if m[FieldOperation] != "fetch" {
		t.Errorf("expected operation=fetch, got %v", m[FieldOperation])
	}
	if m[FieldDuration] != int64(1500) {
		t.Errorf("expected duration_ms=1500, got %v", m[FieldDuration])
	}
}

func TestGlobalLogger(t *testing.T) {
	SetGlobalLogger(nil)
	l := GetGlobalLogger()
	if l == nil {
		t.Fatal("expected a default global logger")
	}

	custom := NewDefault("custom")
	SetGlobalLogger(custom)
	if GetGlobalLogger() != custom {
		t.Error("expected the custom global logger")
	}
}
