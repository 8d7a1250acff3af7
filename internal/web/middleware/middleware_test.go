package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/kozaktomas/face-console/internal/faceapi"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	handler := CORS([]string{"https://console.example.com/"})(okHandler())

	tests := []struct {
		name        string
		origin      string
		wantAllowed bool
	}{
		{"whitelisted", "https://console.example.com", true},
		{"localhost with port", "http://localhost:5173", true},
		{"loopback", "http://127.0.0.1:8080", true},
		{"localhost lookalike", "http://localhost.evil.com", false},
		{"unknown", "https://evil.example.com", false},
		{"no origin", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if tt.wantAllowed && got != tt.origin {
				t.Errorf("expected Allow-Origin %q, got %q", tt.origin, got)
			}
			if !tt.wantAllowed && got != "" {
				t.Errorf("expected no Allow-Origin, got %q", got)
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	handler := CORS(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/reconcile", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if called {
		t.Error("preflight request reached the next handler")
	}
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
}

func TestWithConsoleClient(t *testing.T) {
	client, err := faceapi.NewClient("http://localhost:5000")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	var got *faceapi.Client
	handler := WithConsoleClient(client)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetConsoleFromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got != client {
		t.Error("expected client from context")
	}
}

func TestMustGetConsole_Missing(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if MustGetConsole(req.Context(), rec) != nil {
		t.Fatal("expected nil client")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := chiMiddleware.RequestID(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		LoggerFromContext(r.Context()).Info("handled")
	})))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chiMiddleware.RequestIDHeader, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log entry: %v\n%s", err, buf.String())
	}
	if entry["request_id"] != "req-42" {
		t.Errorf("expected request_id 'req-42', got %v", entry["request_id"])
	}
}

func TestLoggerFromContext_Default(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if LoggerFromContext(req.Context()) == nil {
		t.Error("expected a non-nil fallback logger")
	}
}
