package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/face-console/internal/faceapi"
)

func TestConsoleHandler_Statistics(t *testing.T) {
	server := setupMockConsoleServer(t, map[string]http.HandlerFunc{
		"GET /api/statistic": func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, map[string]any{"total_users": 5, "today_recognitions": 2})
		},
	})
	client := createConsoleClient(t, server)
	handler := NewConsoleHandler()

	req := requestWithConsole(t, "GET", "/api/v1/statistics", nil, client)
	recorder := httptest.NewRecorder()

	handler.Statistics(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	var stats faceapi.Statistics
	parseJSONResponse(t, recorder, &stats)
	if stats.TotalUsers != 5 || stats.TodayRecognitions != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestConsoleHandler_StatisticsUpstreamError(t *testing.T) {
	server := setupMockConsoleServer(t, map[string]http.HandlerFunc{
		"GET /api/statistic": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"code": 999, "msg": "database unavailable"}`))
		},
	})
	client := createConsoleClient(t, server)
	handler := NewConsoleHandler()

	req := requestWithConsole(t, "GET", "/api/v1/statistics", nil, client)
	recorder := httptest.NewRecorder()

	handler.Statistics(recorder, req)

	assertStatusCode(t, recorder, http.StatusUnprocessableEntity)
	assertJSONError(t, recorder, "database unavailable")
}

func TestConsoleHandler_Users(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantQuery string
	}{
		{"defaults", "/api/v1/users", "page=1&page_size=20"},
		{"explicit", "/api/v1/users?page=3&page_size=5&search=bob", "page=3&page_size=5&search=bob"},
		{"invalid numbers", "/api/v1/users?page=-2&page_size=abc", "page=1&page_size=20"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotQuery string
			server := setupMockConsoleServer(t, map[string]http.HandlerFunc{
				"GET /api/user/list": func(w http.ResponseWriter, r *http.Request) {
					gotQuery = r.URL.RawQuery
					writeEnvelope(t, w, map[string]any{
						"total": 1,
						"users": []map[string]any{{"user_id": "u2", "name": "Bob"}},
					})
				},
			})
			client := createConsoleClient(t, server)
			handler := NewConsoleHandler()

			req := requestWithConsole(t, "GET", tc.path, nil, client)
			recorder := httptest.NewRecorder()

			handler.Users(recorder, req)

			assertStatusCode(t, recorder, http.StatusOK)
			if gotQuery != tc.wantQuery {
				t.Errorf("expected query '%s', got '%s'", tc.wantQuery, gotQuery)
			}
			var list faceapi.UserList
			parseJSONResponse(t, recorder, &list)
			if list.Total != 1 || list.Users[0].Name != "Bob" {
				t.Errorf("unexpected user list: %+v", list)
			}
		})
	}
}

func TestConsoleHandler_NoClient(t *testing.T) {
	handler := NewConsoleHandler()

	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	recorder := httptest.NewRecorder()

	handler.Users(recorder, req)

	assertStatusCode(t, recorder, http.StatusInternalServerError)
}
