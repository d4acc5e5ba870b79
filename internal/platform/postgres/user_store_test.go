package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, mock
}

func TestUserStoreNextDocNumber(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)
	userID := uuid.New()

	mock.ExpectQuery("UPDATE users").
		WithArgs(userID, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(int64(5)))

	assigned, err := s.NextDocNumber(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), assigned, "returns the pre-increment value")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreNextDocNumberUserMissing(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery("UPDATE users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := s.NextDocNumber(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStoreCreateDuplicateSubject(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	user, err := domain.NewUser("auth0|dupe", "Dupe", "dupe@example.com", "")
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = s.Create(context.Background(), user)
	assert.True(t, store.IsDuplicateError(err))
}

func TestUserStoreGetBySubNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("auth0|ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetBySub(context.Background(), "auth0|ghost")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStoreGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	userID := uuid.New()
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "sub", "name", "email", "picture", "doc_number", "created_at", "updated_at"}).
		AddRow(userID, "auth0|tester", "Tester", "tester@example.com", "", int64(7), now, now)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(userID).
		WillReturnRows(rows)

	user, err := s.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "auth0|tester", user.Sub)
	assert.Equal(t, int64(7), user.DocNumber)
}
