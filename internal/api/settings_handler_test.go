package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSettingsStore keeps one billing profile per user in memory.
type fakeSettingsStore struct {
	byUser map[uuid.UUID]*domain.Settings
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{byUser: make(map[uuid.UUID]*domain.Settings)}
}

func (s *fakeSettingsStore) Create(_ context.Context, settings *domain.Settings) error {
	if _, ok := s.byUser[settings.UserID]; ok {
		return store.ErrSettingsExist
	}
	s.byUser[settings.UserID] = settings
	return nil
}

func (s *fakeSettingsStore) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.Settings, error) {
	settings, ok := s.byUser[userID]
	if !ok {
		return nil, store.ErrSettingsNotFound
	}
	return settings, nil
}

func (s *fakeSettingsStore) Update(_ context.Context, settings *domain.Settings) error {
	if _, ok := s.byUser[settings.UserID]; !ok {
		return store.ErrSettingsNotFound
	}
	s.byUser[settings.UserID] = settings
	return nil
}

func (s *fakeSettingsStore) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	if _, ok := s.byUser[userID]; !ok {
		return store.ErrSettingsNotFound
	}
	delete(s.byUser, userID)
	return nil
}

func (s *fakeSettingsStore) WithTx(*sql.Tx) store.SettingsStore { return s }

func settingsRouter(h *SettingsHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/settings", h.Get)
	r.Post("/settings", h.Create)
	r.Put("/settings", h.Update)
	r.Delete("/settings", h.Delete)
	return r
}

func validSettingsBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"name":       "John Doe LLC",
		"email":      "johndoe@johndoellc.com",
		"street":     "123 Invoice St",
		"city_state": "City, State",
		"zip":        "01234",
		"phone":      "123-234-3456",
	})
	require.NoError(t, err)
	return body
}

func TestSettingsHandlerCreate(t *testing.T) {
	userID := uuid.New()
	settings := newFakeSettingsStore()
	router := settingsRouter(NewSettingsHandler(settings))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/settings", validSettingsBody(t), userID))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message  string           `json:"message"`
		Settings SettingsResponse `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "settings created", resp.Message)
	assert.Equal(t, "John Doe LLC", resp.Settings.Name)

	stored, err := settings.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, stored.UserID)
}

func TestSettingsHandlerCreateConflictsWhenPresent(t *testing.T) {
	userID := uuid.New()
	settings := newFakeSettingsStore()
	router := settingsRouter(NewSettingsHandler(settings))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/settings", validSettingsBody(t), userID))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/settings", validSettingsBody(t), userID))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Len(t, settings.byUser, 1, "one profile per user")
}

func TestSettingsHandlerGetNotFound(t *testing.T) {
	router := settingsRouter(NewSettingsHandler(newFakeSettingsStore()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/settings", nil, uuid.New()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSettingsHandlerUpdate(t *testing.T) {
	userID := uuid.New()
	settings := newFakeSettingsStore()
	existing, err := domain.NewSettings(userID, "Old Name", "old@example.com", "", "", "", "")
	require.NoError(t, err)
	require.NoError(t, settings.Create(context.Background(), existing))

	router := settingsRouter(NewSettingsHandler(settings))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/settings", validSettingsBody(t), userID))

	assert.Equal(t, http.StatusOK, rec.Code)

	updated, err := settings.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe LLC", updated.Name)
	assert.Equal(t, existing.ID, updated.ID, "profile updated in place")
}

func TestSettingsHandlerUpdateNotFound(t *testing.T) {
	router := settingsRouter(NewSettingsHandler(newFakeSettingsStore()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/settings", validSettingsBody(t), uuid.New()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSettingsHandlerRejectsInvalidPayload(t *testing.T) {
	settings := newFakeSettingsStore()
	router := settingsRouter(NewSettingsHandler(settings))

	body, err := json.Marshal(map[string]string{"name": "No Email LLC"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/settings", body, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, settings.byUser, "store never reached")
}

func TestSettingsHandlerDelete(t *testing.T) {
	userID := uuid.New()
	settings := newFakeSettingsStore()
	existing, err := domain.NewSettings(userID, "John Doe LLC", "johndoe@johndoellc.com", "", "", "", "")
	require.NoError(t, err)
	require.NoError(t, settings.Create(context.Background(), existing))

	router := settingsRouter(NewSettingsHandler(settings))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/settings", nil, userID))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "settings deleted")
	assert.Empty(t, settings.byUser)
}

func TestSettingsHandlerRequiresAuthContext(t *testing.T) {
	router := settingsRouter(NewSettingsHandler(newFakeSettingsStore()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/settings", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
