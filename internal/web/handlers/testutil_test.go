package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kozaktomas/face-console/internal/faceapi"
	"github.com/kozaktomas/face-console/internal/recognition"
	"github.com/kozaktomas/face-console/internal/web/middleware"
)

// testReconciler creates a reconciler with a fixed clock
func testReconciler() *recognition.Reconciler {
	return recognition.New(recognition.WithClock(func() time.Time {
		return time.UnixMilli(1700000000000)
	}))
}

// requestWithConsole creates a request with a console client in context
func requestWithConsole(t *testing.T, method, path string, body io.Reader, client *faceapi.Client) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	ctx := middleware.SetConsoleInContext(req.Context(), client)
	return req.WithContext(ctx)
}

// setupMockConsoleServer creates a mock console backend for handler tests
func setupMockConsoleServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	for pattern, handler := range handlers {
		mux.HandleFunc(pattern, handler)
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// createConsoleClient creates a console client connected to a mock server
func createConsoleClient(t *testing.T, server *httptest.Server) *faceapi.Client {
	t.Helper()
	client, err := faceapi.NewClient(server.URL)
	if err != nil {
		t.Fatalf("failed to create console client: %v", err)
	}
	return client
}

// writeEnvelope writes a successful {code, msg, data} response
func writeEnvelope(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	body, err := json.Marshal(map[string]any{"code": 0, "msg": "success", "data": data})
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// jsonBody creates a request body from a raw JSON string
func jsonBody(s string) io.Reader {
	return bytes.NewBufferString(s)
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertContentType checks if the response has the expected content type
func assertContentType(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	ct := recorder.Header().Get("Content-Type")
	if ct != expected {
		t.Errorf("expected Content-Type '%s', got '%s'", expected, ct)
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]any
	parseJSONResponse(t, recorder, &result)
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%v'", expectedMessage, result["error"])
	}
}

// errorResponse is the reconciled shape of a failed recognition
type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
