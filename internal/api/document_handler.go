package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/api/shared"
	"github.com/ledgerline/ledgerline/internal/service/composer"
)

// DocumentHandler handles invoice or estimate HTTP requests. One instance
// serves one document kind; entity names the kind in response envelopes
// ("invoice" or "estimate").
type DocumentHandler struct {
	svc       composer.Service
	entity    string
	validator *validator.Validate
}

// NewInvoiceHandler creates the handler serving /invoices.
func NewInvoiceHandler(svc composer.Service) *DocumentHandler {
	return &DocumentHandler{svc: svc, entity: "invoice", validator: validator.New()}
}

// NewEstimateHandler creates the handler serving /estimates.
func NewEstimateHandler(svc composer.Service) *DocumentHandler {
	return &DocumentHandler{svc: svc, entity: "estimate", validator: validator.New()}
}

// Create handles POST /{invoices,estimates} requests
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	doc, err := h.svc.Create(r.Context(), userID, in)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message": h.entity + " created",
		h.entity:  documentToResponse(doc),
	})
}

// Get handles GET /{invoices,estimates}/{id} requests
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	docID, ok := pathID(w, r)
	if !ok {
		return
	}

	doc, err := h.svc.Get(r.Context(), userID, docID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		h.entity: documentToResponse(doc),
	})
}

// List handles GET /{invoices,estimates} requests
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	docs, err := h.svc.List(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, documentToResponse(doc))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		h.entity + "s": responses,
	})
}

// Update handles PUT /{invoices,estimates}/{id} requests
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	docID, ok := pathID(w, r)
	if !ok {
		return
	}

	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	doc, err := h.svc.Update(r.Context(), userID, docID, in)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": h.entity + " updated",
		h.entity:  documentToResponse(doc),
	})
}

// Delete handles DELETE /{invoices,estimates}/{id} requests
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	docID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), userID, docID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": h.entity + " deleted",
	})
}

// decodeInput decodes and validates the document payload, writing the error
// response itself on failure.
func (h *DocumentHandler) decodeInput(w http.ResponseWriter, r *http.Request) (*composer.DocumentInput, bool) {
	var req DocumentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return nil, false
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return nil, false
	}

	in, err := req.ToInput()
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return nil, false
	}

	return in, true
}

// authenticatedUser extracts the user ID placed in context by the auth
// middleware, writing a 401 response if absent.
func authenticatedUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the {id} path parameter, writing a 400 response on failure.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}
