package handlers

import (
	"io"
	"net/http"

	"github.com/kozaktomas/face-console/internal/constants"
	"github.com/kozaktomas/face-console/internal/recognition"
	"github.com/kozaktomas/face-console/internal/web/middleware"
)

// ReconcileHandler normalizes raw recognition payloads posted by a display layer.
type ReconcileHandler struct {
	reconciler *recognition.Reconciler
}

// NewReconcileHandler creates a new reconcile handler.
func NewReconcileHandler(rc *recognition.Reconciler) *ReconcileHandler {
	return &ReconcileHandler{reconciler: rc}
}

// Reconcile handles POST /reconcile with a raw recognition payload as the body.
func (h *ReconcileHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxReconcileBodySize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	result, err := h.reconciler.ReconcileJSON(body)
	if err != nil {
		middleware.LoggerFromContext(r.Context()).Debug("reconcile rejected payload", "error", err)
	}
	respondReconciled(w, result, err, http.StatusBadRequest)
}
