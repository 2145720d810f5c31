package handler

import (
	"net/http"

	"fxdisplay/internal/settings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CreateSession godoc
// @Summary Start a dashboard session
// @Description Creates a session holding the default currency settings
// @Tags Sessions
// @Produce json
// @Success 201 {object} settings.View
// @Router /sessions [post]
func (h *Handler) CreateSession(w http.ResponseWriter, _ *http.Request) {
	session, err := h.sessions.Create()
	if err != nil {
		writeServiceError(w, err, "CreateSession", nil, "failed to create session")
		return
	}
	view, err := h.sessions.View(session.ID)
	if err != nil {
		writeServiceError(w, err, "CreateSession", logrus.Fields{"session_id": session.ID}, "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// GetSessionSettings godoc
// @Summary Get session settings
// @Description Settings of the session together with the shared rate store status
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} settings.View
// @Failure 404 {object} errorResponse
// @Router /sessions/{id}/settings [get]
func (h *Handler) GetSessionSettings(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSessionID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	view, err := h.sessions.View(id)
	if err != nil {
		writeServiceError(w, err, "GetSessionSettings", logrus.Fields{"session_id": id}, "failed to get settings")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// PatchSessionSettings godoc
// @Summary Update session settings
// @Description Applies every field or none. An empty fx_as_of clears the pinned date.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body settings.Patch true "Changes"
// @Success 200 {object} settings.View
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /sessions/{id}/settings [patch]
func (h *Handler) PatchSessionSettings(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSessionID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var patch settings.Patch
	if !decodeBody(w, r, 1024, &patch) {
		return
	}
	if _, err := h.sessions.Apply(id, patch); err != nil {
		writeServiceError(w, err, "PatchSessionSettings", logrus.Fields{"session_id": id}, "failed to update settings")
		return
	}
	h.respondView(w, id, "PatchSessionSettings")
}

// ToggleSession godoc
// @Summary Toggle base currency display
// @Description Flips show_in_base_currency. Amounts and rates are not touched.
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} settings.View
// @Failure 404 {object} errorResponse
// @Router /sessions/{id}/toggle [post]
func (h *Handler) ToggleSession(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSessionID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if _, err := h.sessions.Toggle(id); err != nil {
		writeServiceError(w, err, "ToggleSession", logrus.Fields{"session_id": id}, "failed to toggle")
		return
	}
	h.respondView(w, id, "ToggleSession")
}

// DeleteSession godoc
// @Summary End a dashboard session
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 400 {object} errorResponse
// @Router /sessions/{id} [delete]
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := parseSessionID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	h.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondView(w http.ResponseWriter, id uuid.UUID, handler string) {
	view, err := h.sessions.View(id)
	if err != nil {
		writeServiceError(w, err, handler, logrus.Fields{"session_id": id}, "failed to read settings")
		return
	}
	writeJSON(w, http.StatusOK, view)
}
