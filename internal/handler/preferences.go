package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "contractpad/internal/domain/services/docsystem"
	"contractpad/internal/httputil"
)

// PreferencesHandler handles editor preferences HTTP requests
type PreferencesHandler struct {
	service docsysSvc.PreferencesService
	logger  *slog.Logger
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(service docsysSvc.PreferencesService, logger *slog.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		service: service,
		logger:  logger,
	}
}

// GetPreferences retrieves editor preferences
// GET /api/preferences
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.service.GetPreferences(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, prefs)
}

// UpdatePreferences updates editor preferences
// PUT /api/preferences
func (h *PreferencesHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.UpdatePreferencesRequest
	if !parseBody(w, r, &req) {
		return
	}

	prefs, err := h.service.UpdatePreferences(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, prefs)
}
