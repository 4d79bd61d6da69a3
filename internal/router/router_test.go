package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rehnuma-chat/internal/handlers"
	"rehnuma-chat/internal/models"
)

func TestRouter_APIRoutes(t *testing.T) {
	r := New(handlers.NewChatHandler(nil, "gemini-1.5-flash", false), filepath.Join(t.TempDir(), "missing"), "*")

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/api/health", "", http.StatusOK},
		{http.MethodGet, "/api/test", "", http.StatusOK},
		{http.MethodPost, "/api/chat", `{"message":"Hello"}`, http.StatusInternalServerError},
		{http.MethodPost, "/api/chat", `{}`, http.StatusBadRequest},
		{http.MethodGet, "/api/chat", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/", "", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, rr.Code)
			}
			if rr.Header().Get("X-Request-ID") == "" {
				t.Error("expected X-Request-ID header")
			}
		})
	}
}

func TestRouter_ServesStaticIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Rehnuma</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := New(handlers.NewChatHandler(nil, "gemini-1.5-flash", false), dir, "*")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Rehnuma") {
		t.Errorf("expected index.html body, got %q", rr.Body.String())
	}

	// API routes still win over the static catch-all.
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	var health models.HealthResponse
	json.NewDecoder(rr.Body).Decode(&health)
	if health.Status != "healthy" {
		t.Errorf("expected health response, got %+v", health)
	}
}
