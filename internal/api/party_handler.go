package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/api/shared"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/search"
	"github.com/ledgerline/ledgerline/internal/store"
)

// PartyHandler handles the standalone business and client CRUD endpoints.
// One instance serves one party kind. Writes are mirrored into the search
// index best-effort.
type PartyHandler struct {
	parties   store.PartyStore
	index     search.Index
	kind      domain.PartyKind
	entity    string
	plural    string
	validator *validator.Validate
}

// NewBusinessHandler creates the handler serving /businesses.
func NewBusinessHandler(parties store.PartyStore, index search.Index) *PartyHandler {
	return &PartyHandler{
		parties:   parties,
		index:     index,
		kind:      domain.PartyKindBusiness,
		entity:    "business",
		plural:    "businesses",
		validator: validator.New(),
	}
}

// NewClientHandler creates the handler serving /clients.
func NewClientHandler(parties store.PartyStore, index search.Index) *PartyHandler {
	return &PartyHandler{
		parties:   parties,
		index:     index,
		kind:      domain.PartyKindClient,
		entity:    "client",
		plural:    "clients",
		validator: validator.New(),
	}
}

// Create handles POST /{businesses,clients} requests.
// Explicitly created parties are visible immediately; only parties created
// implicitly through document composition start hidden.
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	var req PartyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	party, err := domain.NewParty(h.kind, userID, req.Name, req.Email, req.Street, req.CityState, req.Zip, req.Phone)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	party.IsHidden = false

	if err := h.parties.Create(r.Context(), party); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.mirrorSave(r, party)

	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message": h.entity + " created",
		h.entity:  partyToResponse(party),
	})
}

// Get handles GET /{businesses,clients}/{id} requests
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	party, err := h.load(w, r, userID, id)
	if err != nil {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		h.entity: partyToResponse(party),
	})
}

// List handles GET /{businesses,clients} requests
func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	parties, err := h.parties.ListByUserID(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]*PartyResponse, 0, len(parties))
	for _, party := range parties {
		responses = append(responses, partyToResponse(party))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		h.plural: responses,
	})
}

// Update handles PUT /{businesses,clients}/{id} requests
func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req PartyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	party, err := h.load(w, r, userID, id)
	if err != nil {
		return
	}

	party.Name = req.Name
	party.Email = req.Email
	party.Street = req.Street
	party.CityState = req.CityState
	party.Zip = req.Zip
	party.Phone = req.Phone

	if err := h.parties.Update(r.Context(), party); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.mirrorUpdate(r, party)

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": h.entity + " updated",
		h.entity:  partyToResponse(party),
	})
}

// Delete handles DELETE /{businesses,clients}/{id} requests
func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if _, err := h.load(w, r, userID, id); err != nil {
		return
	}

	if err := h.parties.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := h.index.DeleteRecord(r.Context(), id.String()); err != nil {
		slog.Warn("search index delete failed", "error", err, "object_id", id.String())
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": h.entity + " deleted",
	})
}

// load fetches the party and enforces ownership, writing the error response
// itself on failure.
func (h *PartyHandler) load(w http.ResponseWriter, r *http.Request, userID, id uuid.UUID) (*domain.Party, error) {
	party, err := h.parties.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return nil, err
	}
	if party.UserID != userID {
		err := store.ErrNotOwned
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return nil, err
	}
	return party, nil
}

func (h *PartyHandler) mirrorSave(r *http.Request, party *domain.Party) {
	rec := search.RecordFromParty(party)
	if err := h.index.SaveRecords(r.Context(), []search.Record{rec}); err != nil {
		slog.Warn("search index save failed", "error", err, "object_id", rec.ObjectID)
	}
}

func (h *PartyHandler) mirrorUpdate(r *http.Request, party *domain.Party) {
	rec := search.RecordFromParty(party)
	if err := h.index.PartialUpdateRecord(r.Context(), rec); err != nil {
		slog.Warn("search index update failed", "error", err, "object_id", rec.ObjectID)
	}
}
