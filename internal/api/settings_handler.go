package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ledgerline/ledgerline/internal/api/shared"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/store"
)

// SettingsHandler handles the billing profile HTTP requests. The profile is
// addressed by the authenticated user, so the routes carry no id parameter.
type SettingsHandler struct {
	settings  store.SettingsStore
	validator *validator.Validate
}

// NewSettingsHandler creates the handler serving /settings.
func NewSettingsHandler(settings store.SettingsStore) *SettingsHandler {
	return &SettingsHandler{
		settings:  settings,
		validator: validator.New(),
	}
}

// Create handles POST /settings requests.
// Each user owns at most one profile; a second create returns 409.
func (h *SettingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	settings, err := domain.NewSettings(userID, req.Name, req.Email, req.Street, req.CityState, req.Zip, req.Phone)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := h.settings.Create(r.Context(), settings); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message":  "settings created",
		"settings": settingsToResponse(settings),
	})
}

// Get handles GET /settings requests
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	settings, err := h.settings.GetByUserID(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"settings": settingsToResponse(settings),
	})
}

// Update handles PUT /settings requests
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	settings, err := h.settings.GetByUserID(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	settings.Name = req.Name
	settings.Email = req.Email
	settings.Street = req.Street
	settings.CityState = req.CityState
	settings.Zip = req.Zip
	settings.Phone = req.Phone

	if err := h.settings.Update(r.Context(), settings); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message":  "settings updated",
		"settings": settingsToResponse(settings),
	})
}

// Delete handles DELETE /settings requests
func (h *SettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	if err := h.settings.DeleteByUserID(r.Context(), userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "settings deleted",
	})
}

// decodeRequest decodes and validates the settings payload, writing the
// error response itself on failure.
func (h *SettingsHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*SettingsRequest, bool) {
	var req SettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return nil, false
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return nil, false
	}

	return &req, true
}
