package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var frontendHosts = []string{"app.orcamentos.app", "localhost:5173", "[::1]"}

func TestIsOriginAllowed(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		allowed []string
		want    bool
	}{
		{"web app", "https://app.orcamentos.app", frontendHosts, true},
		{"web app on any port", "https://app.orcamentos.app:8443", frontendHosts, true},
		{"dev server exact port", "http://localhost:5173", frontendHosts, true},
		{"dev server other port", "http://localhost:3000", frontendHosts, false},
		{"ipv6 loopback any port", "http://[::1]:5173", frontendHosts, true},
		{"ipv6 entry without brackets", "http://[::1]:5173", []string{"::1"}, true},
		{"ipv6 entry with port", "http://[::1]:5173", []string{"[::1]:5173"}, true},
		{"ipv6 entry port mismatch", "http://[::1]:4000", []string{"[::1]:5173"}, false},
		{"other ipv6", "http://[::2]:5173", frontendHosts, false},
		{"mixed case", "HTTPS://App.Orcamentos.APP", frontendHosts, true},
		{"padded entry", "https://app.orcamentos.app", []string{"  app.orcamentos.app  "}, true},
		{"lookalike", "https://app.orcamentos.app.evil.io", frontendHosts, false},
		{"malformed origin", "://sem-esquema", frontendHosts, false},
		{"null origin", "null", frontendHosts, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isOriginAllowed(tt.origin, tt.allowed); got != tt.want {
				t.Errorf("isOriginAllowed(%q, %v) = %v, want %v", tt.origin, tt.allowed, got, tt.want)
			}
		})
	}
}

func serveCORS(hosts []string, method, path, origin string) (*httptest.ResponseRecorder, bool) {
	reached := false
	handler := CORS(hosts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, path, nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, reached
}

func TestCORS_Unrestricted(t *testing.T) {
	rr, reached := serveCORS(nil, http.MethodGet, "/api/orcamentos", "https://qualquer.dev")

	if !reached || rr.Code != http.StatusOK {
		t.Fatalf("expected request to pass, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("wildcard origin must not allow credentials, got %q", got)
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	rr, reached := serveCORS(frontendHosts, http.MethodGet, "/api/orcamentos/3/gastos-fixos", "http://[::1]:5173")

	if !reached || rr.Code != http.StatusOK {
		t.Fatalf("expected request to pass, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://[::1]:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q, want true", got)
	}
	if got := rr.Header().Get("Vary"); got != "Origin" {
		t.Errorf("Vary = %q, want Origin", got)
	}
}

func TestCORS_RejectsForeignOrigin(t *testing.T) {
	rr, reached := serveCORS(frontendHosts, http.MethodPost, "/api/auth/google", "https://evil.io")

	if reached {
		t.Error("handler reached for a foreign origin")
	}
	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rr.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	rr, reached := serveCORS(frontendHosts, http.MethodOptions, "/api/investimentos/1", "https://app.orcamentos.app")

	if reached {
		t.Error("preflight must not reach the handler")
	}
	if rr.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, PATCH, DELETE, OPTIONS" {
		t.Errorf("Allow-Methods = %q", got)
	}
}

func TestCORS_HealthIgnoresOrigin(t *testing.T) {
	rr, reached := serveCORS(frontendHosts, http.MethodGet, "/health", "https://evil.io")

	if !reached || rr.Code != http.StatusOK {
		t.Fatalf("expected health check to pass, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

func TestCORS_NoOrigin(t *testing.T) {
	rr, reached := serveCORS(frontendHosts, http.MethodGet, "/api/users/me", "")

	if !reached || rr.Code != http.StatusOK {
		t.Fatalf("expected request without Origin to pass, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty", got)
	}
}
