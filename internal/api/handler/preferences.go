package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"

	"fxdisplay/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const maxPreferenceBytes = 64 << 10

var preferenceKey = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// GetPreference godoc
// @Summary Read a dashboard preference
// @Description Returns the stored JSON value, or null when the key was never written
// @Tags Preferences
// @Produce json
// @Param key path string true "Preference key"
// @Success 200 {object} object
// @Failure 400 {object} errorResponse
// @Router /preferences/{key} [get]
func (h *Handler) GetPreference(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !preferenceKey.MatchString(key) {
		writeError(w, http.StatusBadRequest, "invalid preference key")
		return
	}
	value, err := h.prefs.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrPreferenceNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		msg := "failed to read preference"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetPreference", "key": key}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(value)
}

// PutPreference godoc
// @Summary Write a dashboard preference
// @Description Stores any JSON value under key
// @Tags Preferences
// @Accept json
// @Param key path string true "Preference key"
// @Param request body object true "Value"
// @Success 204
// @Failure 400 {object} errorResponse
// @Router /preferences/{key} [put]
func (h *Handler) PutPreference(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !preferenceKey.MatchString(key) {
		writeError(w, http.StatusBadRequest, "invalid preference key")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxPreferenceBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err = h.prefs.Set(r.Context(), key, body); err != nil {
		msg := "failed to store preference"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "PutPreference", "key": key}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
