package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"apigee-gateway/apigee"
	"apigee-gateway/auth"
	"apigee-gateway/config"
	"apigee-gateway/logger"
	"apigee-gateway/resilience"
	"apigee-gateway/teams"
	"apigee-gateway/tools"
)

func testServer(t *testing.T, upstream http.HandlerFunc) *Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if upstream != nil {
			upstream(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	t.Cleanup(srv.Close)

	invoker := resilience.NewInvoker(resilience.Config{MaxRetries: 1}, resilience.Hooks{})
	client, err := apigee.NewClient(apigee.ClientConfig{
		BaseURL:      srv.URL,
		Organization: "acme",
	}, &auth.StaticTokenSource{AccessToken: "test-token"}, invoker)
	if err != nil {
		t.Fatal(err)
	}

	log := logger.NewDefault("gateway-test")
	dispatcher := tools.NewDispatcher(client, teams.NewInMemoryRepository(), nil, log)

	s := New(config.ServerConfig{Host: "127.0.0.1", Port: 0}, log)
	s.Routes(dispatcher, invoker, "apigee-gateway", "test")
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func TestListTools(t *testing.T) {
	s := testServer(t, nil)
	rec := do(t, s, http.MethodGet, "/api/tools", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data struct {
			Tools []tools.Tool `json:"tools"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data.Tools) == 0 {
		t.Error("expected a non-empty catalog")
	}
}

func TestCallToolSuccess(t *testing.T) {
	s := testServer(t, nil)
	rec := do(t, s, http.MethodPost, "/api/tools/list-api-proxies", "{}")

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var resp DataResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.CorrelationID == "" {
		t.Error("expected a correlation ID in the success envelope")
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected an X-Request-Id header")
	}
}

func TestCallToolNoBody(t *testing.T) {
	s := testServer(t, nil)
	rec := do(t, s, http.MethodPost, "/api/tools/list-organizations", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCallToolUnknown(t *testing.T) {
	s := testServer(t, nil)
	rec := do(t, s, http.MethodPost, "/api/tools/no-such-tool", "{}")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Error struct {
			Code          string `json:"code"`
			CorrelationID string `json:"correlation_id"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "RESOURCE_NOT_FOUND" {
		t.Errorf("unexpected code %q", resp.Error.Code)
	}
	if resp.Error.CorrelationID == "" {
		t.Error("expected a correlation ID in the error envelope")
	}
}

func TestCallToolValidationError(t *testing.T) {
	s := testServer(t, nil)
	rec := do(t, s, http.MethodPost, "/api/tools/get-api-proxy", "{}")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCallToolMalformedBody(t *testing.T) {
	s := testServer(t, nil)
	rec := do(t, s, http.MethodPost, "/api/tools/list-api-proxies", "{not json")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCallToolUpstreamFailure(t *testing.T) {
	s := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"denied"}`, http.StatusForbidden)
	})
	rec := do(t, s, http.MethodPost, "/api/tools/list-api-proxies", "{}")

	if rec.Code != http.StatusForbidden {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t, nil)
	rec := do(t, s, http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var health struct {
		Service    string `json:"service"`
		Status     string `json:"status"`
		Components []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"components"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "up" {
		t.Errorf("unexpected status %q", health.Status)
	}
	if len(health.Components) != 1 || health.Components[0].Name != "circuit_breakers" {
		t.Errorf("unexpected components: %+v", health.Components)
	}
}

func TestLivenessAndReadiness(t *testing.T) {
	s := testServer(t, nil)
	for _, path := range []string{"/alive", "/ready"} {
		rec := do(t, s, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: unexpected status %d", path, rec.Code)
		}
	}
}
