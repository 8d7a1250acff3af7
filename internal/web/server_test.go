package web

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kozaktomas/face-console/internal/config"
	"github.com/kozaktomas/face-console/internal/faceapi"
	"github.com/kozaktomas/face-console/internal/recognition"
)

func newTestServer(t *testing.T, backend http.Handler) *Server {
	t.Helper()
	console := httptest.NewServer(backend)
	t.Cleanup(console.Close)

	client, err := faceapi.NewClient(console.URL)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	cfg := &config.Config{
		Console: config.ConsoleConfig{URL: console.URL, Timeout: 5 * time.Second},
		Web:     config.WebConfig{Host: "127.0.0.1", Port: 0},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(cfg, client, recognition.New(), logger)
}

func TestRoutes(t *testing.T) {
	backend := http.NewServeMux()
	backend.HandleFunc("GET /api/statistic", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":0,"data":{"total_users":3}}`))
	})
	backend.HandleFunc("GET /api/user/list", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":0,"data":{"total":0,"users":[]}}`))
	})
	backend.HandleFunc("POST /api/recognize/camera", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":0,"data":{"total_count":0,"match_details":[]}}`))
	})
	s := newTestServer(t, backend)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{"GET", "/api/v1/health", "", http.StatusOK},
		{"POST", "/api/v1/reconcile", `{"total_count": 0}`, http.StatusOK},
		{"POST", "/api/v1/reconcile", `oops`, http.StatusBadRequest},
		{"POST", "/api/v1/recognize/camera", `{"image":"AAAA"}`, http.StatusOK},
		{"GET", "/api/v1/statistics", "", http.StatusOK},
		{"GET", "/api/v1/users", "", http.StatusOK},
		{"GET", "/api/v1/reconcile", "", http.StatusMethodNotAllowed},
		{"GET", "/api/v1/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			rec := httptest.NewRecorder()

			s.Router().ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d\nBody: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/reconcile", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()

	s.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected Allow-Origin for localhost, got %q", got)
	}
}

func TestReconcileRoundTrip(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())

	payload := `{"total_count":1,"unmatched_count_db":1,"unseen_user_ids":["42"],"match_details":[],"session":"abc"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reconcile", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()

	s.Router().ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, want := range []string{`"user_id":"42"`, `"session":"abc"`, `"database_unseen_count":1`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %s in body: %s", want, body)
		}
	}
}
