package version

import (
	"strings"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	info := Get()
	if info.Version != "dev" {
		t.Errorf("unexpected version %q", info.Version)
	}
}

func TestShortIncludesVersion(t *testing.T) {
	if !strings.HasPrefix(Short(), "dev") {
		t.Errorf("unexpected short version %q", Short())
	}
}
