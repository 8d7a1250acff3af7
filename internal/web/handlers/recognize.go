package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/kozaktomas/face-console/internal/constants"
	"github.com/kozaktomas/face-console/internal/faceapi"
	"github.com/kozaktomas/face-console/internal/recognition"
	"github.com/kozaktomas/face-console/internal/web/middleware"
)

// RecognizeHandler forwards images to the console backend and reconciles the result.
type RecognizeHandler struct {
	reconciler *recognition.Reconciler
	useRoster  bool
}

// NewRecognizeHandler creates a new recognize handler. With useRoster set, the
// registered-user list is fetched per request to describe unseen users.
func NewRecognizeHandler(rc *recognition.Reconciler, useRoster bool) *RecognizeHandler {
	return &RecognizeHandler{reconciler: rc, useRoster: useRoster}
}

// Upload handles POST /recognize/upload with a multipart "file" field.
func (h *RecognizeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadSize)
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	client := middleware.MustGetConsole(r.Context(), w)
	if client == nil {
		return
	}

	payload, err := client.RecognizeByUpload(r.Context(), filepath.Base(header.Filename), file)
	h.respond(w, r, client, payload, err)
}

// Camera handles POST /recognize/camera with a {"image": "<base64>"} body.
func (h *RecognizeHandler) Camera(w http.ResponseWriter, r *http.Request) {
	var req faceapi.RecognizeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, constants.MaxUploadSize)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.Image == "" {
		respondError(w, http.StatusBadRequest, "image is required")
		return
	}

	client := middleware.MustGetConsole(r.Context(), w)
	if client == nil {
		return
	}

	payload, err := client.RecognizeByCamera(r.Context(), req.Image)
	h.respond(w, r, client, payload, err)
}

func (h *RecognizeHandler) respond(w http.ResponseWriter, r *http.Request, client *faceapi.Client, payload faceapi.Recognition, err error) {
	logger := middleware.LoggerFromContext(r.Context())

	if err != nil {
		logger.Warn("recognition request failed", "error", sanitizeForLog(err.Error()))
		result, rerr := h.reconciler.Reconcile(recognition.ErrorPayload(faceapi.ErrorDetails(err)))
		respondReconciled(w, result, rerr, http.StatusBadGateway)
		return
	}

	result, err := h.reconcilerFor(r.Context(), client, logger).ReconcileJSON(payload)
	if err != nil {
		logger.Warn("console returned an unusable recognition payload", "error", err)
	}
	respondReconciled(w, result, err, http.StatusBadGateway)
}

// reconcilerFor attaches the roster when enabled. A roster failure only
// disables the roster tier for this request.
func (h *RecognizeHandler) reconcilerFor(ctx context.Context, client *faceapi.Client, logger *slog.Logger) *recognition.Reconciler {
	if !h.useRoster {
		return h.reconciler
	}
	roster, err := client.Roster(ctx)
	if err != nil {
		logger.Warn("could not load user roster, continuing without it", "error", err)
		return h.reconciler
	}
	return h.reconciler.ForRoster(roster)
}
