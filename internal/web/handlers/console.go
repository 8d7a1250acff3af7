package handlers

import (
	"net/http"
	"strconv"

	"github.com/kozaktomas/face-console/internal/constants"
	"github.com/kozaktomas/face-console/internal/faceapi"
	"github.com/kozaktomas/face-console/internal/web/middleware"
)

// ConsoleHandler passes statistics and the user list through from the console backend.
type ConsoleHandler struct {
	pageSize int
}

// NewConsoleHandler creates a new console passthrough handler.
func NewConsoleHandler() *ConsoleHandler {
	return &ConsoleHandler{pageSize: constants.DefaultUserListPageSize}
}

// Statistics handles GET /statistics.
func (h *ConsoleHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	client := middleware.MustGetConsole(r.Context(), w)
	if client == nil {
		return
	}

	stats, err := client.GetStatistics(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// Users handles GET /users?page=&page_size=&search=.
func (h *ConsoleHandler) Users(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize <= 0 {
		pageSize = h.pageSize
	}

	client := middleware.MustGetConsole(r.Context(), w)
	if client == nil {
		return
	}

	list, err := client.GetUserList(r.Context(), faceapi.UserListParams{
		Page:     page,
		PageSize: pageSize,
		Search:   r.URL.Query().Get("search"),
	})
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}
