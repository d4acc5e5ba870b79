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

// ItemHandler handles the standalone item CRUD endpoints. Writes are
// mirrored into the search index best-effort.
type ItemHandler struct {
	items     store.ItemStore
	index     search.Index
	validator *validator.Validate
}

// NewItemHandler creates the handler serving /items.
func NewItemHandler(items store.ItemStore, index search.Index) *ItemHandler {
	return &ItemHandler{
		items:     items,
		index:     index,
		validator: validator.New(),
	}
}

// Create handles POST /items requests.
// Explicitly created items are visible immediately; only items created
// implicitly through document composition start hidden.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	var req ItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	item, err := domain.NewItem(userID, req.Description, req.Rate)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	item.IsHidden = false

	if err := h.items.Create(r.Context(), item); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.mirrorSave(r, item)

	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message": "item created",
		"item":    itemToResponse(item),
	})
}

// Get handles GET /items/{id} requests
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := h.load(w, r, userID, id)
	if err != nil {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"item": itemToResponse(item),
	})
}

// List handles GET /items requests
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	items, err := h.items.ListByUserID(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, itemToResponse(item))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"items": responses,
	})
}

// Update handles PUT /items/{id} requests
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	item, err := h.load(w, r, userID, id)
	if err != nil {
		return
	}

	item.Description = req.Description
	item.Rate = req.Rate

	if err := h.items.Update(r.Context(), item); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.mirrorUpdate(r, item)

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "item updated",
		"item":    itemToResponse(item),
	})
}

// Delete handles DELETE /items/{id} requests
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.items.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := h.index.DeleteRecord(r.Context(), id.String()); err != nil {
		slog.Warn("search index delete failed", "error", err, "object_id", id.String())
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "item deleted",
	})
}

// load fetches the item and enforces ownership, writing the error response
// itself on failure.
func (h *ItemHandler) load(w http.ResponseWriter, r *http.Request, userID, id uuid.UUID) (*domain.Item, error) {
	item, err := h.items.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return nil, err
	}
	if item.UserID != userID {
		err := store.ErrNotOwned
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return nil, err
	}
	return item, nil
}

func (h *ItemHandler) mirrorSave(r *http.Request, item *domain.Item) {
	rec := search.RecordFromItem(item)
	if err := h.index.SaveRecords(r.Context(), []search.Record{rec}); err != nil {
		slog.Warn("search index save failed", "error", err, "object_id", rec.ObjectID)
	}
}

func (h *ItemHandler) mirrorUpdate(r *http.Request, item *domain.Item) {
	rec := search.RecordFromItem(item)
	if err := h.index.PartialUpdateRecord(r.Context(), rec); err != nil {
		slog.Warn("search index update failed", "error", err, "object_id", rec.ObjectID)
	}
}
