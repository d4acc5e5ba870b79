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

// fakeUserStore serves users by id from memory.
type fakeUserStore struct {
	byID map[uuid.UUID]*domain.User
}

func newFakeUserStore(users ...*domain.User) *fakeUserStore {
	s := &fakeUserStore{byID: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		s.byID[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	s.byID[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) GetBySub(_ context.Context, sub string) (*domain.User, error) {
	for _, u := range s.byID {
		if u.Sub == sub {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) Update(_ context.Context, user *domain.User) error {
	if _, ok := s.byID[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	s.byID[user.ID] = user
	return nil
}

func (s *fakeUserStore) FindOrCreate(ctx context.Context, user *domain.User) (*domain.User, error) {
	if existing, err := s.GetBySub(ctx, user.Sub); err == nil {
		return existing, nil
	}
	s.byID[user.ID] = user
	return user, nil
}

func (s *fakeUserStore) NextDocNumber(_ context.Context, id uuid.UUID) (int64, error) {
	u, ok := s.byID[id]
	if !ok {
		return 0, store.ErrUserNotFound
	}
	assigned := u.DocNumber
	u.DocNumber++
	return assigned, nil
}

func (s *fakeUserStore) WithTx(*sql.Tx) store.UserStore { return s }

func userRouter(h *UserHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/users/me", h.Me)
	r.Put("/users/me", h.Update)
	return r
}

func TestUserHandlerMe(t *testing.T) {
	user, err := domain.NewUser("auth0|tester", "Tester", "tester@example.com", "https://example.com/t.png")
	require.NoError(t, err)

	router := userRouter(NewUserHandler(newFakeUserStore(user)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/users/me", nil, user.ID))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User UserResponse `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, user.ID.String(), resp.User.ID)
	assert.Equal(t, "Tester", resp.User.Name)
}

func TestUserHandlerUpdate(t *testing.T) {
	user, err := domain.NewUser("auth0|tester", "Old Name", "old@example.com", "https://example.com/t.png")
	require.NoError(t, err)
	user.DocNumber = 7

	users := newFakeUserStore(user)
	router := userRouter(NewUserHandler(users))

	body, err := json.Marshal(map[string]string{
		"name":  "New Name",
		"email": "new@example.com",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/users/me", body, user.ID))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string       `json:"message"`
		User    UserResponse `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user updated", resp.Message)
	assert.Equal(t, "New Name", resp.User.Name)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", stored.Email)
	assert.Equal(t, "auth0|tester", stored.Sub, "subject never changes")
	assert.Equal(t, int64(7), stored.DocNumber, "document counter never changes")
	assert.Equal(t, "https://example.com/t.png", stored.Picture, "omitted picture preserved")
}

func TestUserHandlerUpdateRejectsInvalidEmail(t *testing.T) {
	user, err := domain.NewUser("auth0|tester", "Tester", "tester@example.com", "")
	require.NoError(t, err)

	users := newFakeUserStore(user)
	router := userRouter(NewUserHandler(users))

	body, err := json.Marshal(map[string]string{
		"name":  "Tester",
		"email": "not-an-email",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/users/me", body, user.ID))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "tester@example.com", stored.Email, "store never reached")
}

func TestUserHandlerUpdateRequiresAuthContext(t *testing.T) {
	router := userRouter(NewUserHandler(newFakeUserStore()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
