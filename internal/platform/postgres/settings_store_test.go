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

func testSettings(t *testing.T, userID uuid.UUID) *domain.Settings {
	t.Helper()
	settings, err := domain.NewSettings(userID, "John Doe LLC", "johndoe@johndoellc.com", "123 Invoice St", "City, State", "01234", "123-234-3456")
	require.NoError(t, err)
	return settings
}

func TestSettingsStoreCreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSettingsStore(db, nil)

	mock.ExpectExec("INSERT INTO settings").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := s.Create(context.Background(), testSettings(t, uuid.New()))
	assert.ErrorIs(t, err, store.ErrSettingsExist)
}

func TestSettingsStoreCreateUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSettingsStore(db, nil)

	mock.ExpectExec("INSERT INTO settings").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := s.Create(context.Background(), testSettings(t, uuid.New()))
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestSettingsStoreGetByUserIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSettingsStore(db, nil)

	mock.ExpectQuery("SELECT (.+) FROM settings").
		WithArgs(sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetByUserID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrSettingsNotFound)
}

func TestSettingsStoreGetByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSettingsStore(db, nil)

	userID := uuid.New()
	settingsID := uuid.New()
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "email", "street", "city_state", "zip", "phone", "created_at", "updated_at"}).
		AddRow(settingsID, userID, "John Doe LLC", "johndoe@johndoellc.com", "", "", "", "", now, now)

	mock.ExpectQuery("SELECT (.+) FROM settings").
		WithArgs(userID).
		WillReturnRows(rows)

	settings, err := s.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, settingsID, settings.ID)
	assert.Equal(t, "John Doe LLC", settings.Name)
}

func TestSettingsStoreUpdateMissing(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSettingsStore(db, nil)

	mock.ExpectExec("UPDATE settings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), testSettings(t, uuid.New()))
	assert.ErrorIs(t, err, store.ErrSettingsNotFound)
}

func TestSettingsStoreDeleteByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSettingsStore(db, nil)
	userID := uuid.New()

	mock.ExpectExec("DELETE FROM settings").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.DeleteByUserID(context.Background(), userID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsStoreDeleteByUserIDMissing(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSettingsStore(db, nil)

	mock.ExpectExec("DELETE FROM settings").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeleteByUserID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrSettingsNotFound)
}
