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

func testParty(t *testing.T, kind domain.PartyKind) *domain.Party {
	t.Helper()
	party, err := domain.NewParty(kind, uuid.New(), "XYZ", "xyz@xyz.com", "1 Main St", "Springfield, IL", "62701", "555-0100")
	require.NoError(t, err)
	return party
}

func partyRows(party *domain.Party) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "user_id", "name", "email", "street", "city_state", "zip", "phone", "is_hidden", "created_at", "updated_at",
	}).AddRow(party.ID, party.UserID, party.Name, party.Email, party.Street, party.CityState, party.Zip, party.Phone, party.IsHidden, now, now)
}

func TestPartyStoreCreateMapsUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresBusinessStore(db, nil)

	mock.ExpectExec("INSERT INTO businesses").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := s.Create(context.Background(), testParty(t, domain.PartyKindBusiness))
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestPartyStoreGetByIDNotFound(t *testing.T) {
	t.Run("business", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresBusinessStore(db, nil)

		mock.ExpectQuery("SELECT (.+) FROM businesses").
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrBusinessNotFound)
	})

	t.Run("client", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresClientStore(db, nil)

		mock.ExpectQuery("SELECT (.+) FROM clients").
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrClientNotFound)
	})
}

func TestPartyStoreFindOrCreateReturnsExisting(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresClientStore(db, nil)
	party := testParty(t, domain.PartyKindClient)

	mock.ExpectQuery("SELECT (.+) FROM clients").
		WithArgs(party.UserID, party.Email).
		WillReturnRows(partyRows(party))

	found, created, err := s.FindOrCreate(context.Background(), party)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, party.ID, found.ID)
	assert.Equal(t, domain.PartyKindClient, found.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPartyStoreFindOrCreateInsertsWhenAbsent(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresBusinessStore(db, nil)
	party := testParty(t, domain.PartyKindBusiness)

	mock.ExpectQuery("SELECT (.+) FROM businesses").
		WithArgs(party.UserID, party.Email).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO businesses").
		WillReturnResult(sqlmock.NewResult(0, 1))

	found, created, err := s.FindOrCreate(context.Background(), party)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, party.ID, found.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPartyStoreSetVisibleMissing(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresBusinessStore(db, nil)

	mock.ExpectExec("UPDATE businesses").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.SetVisible(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrBusinessNotFound)
}

func TestPartyStoreDelete(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresClientStore(db, nil)
	id := uuid.New()

	mock.ExpectExec("DELETE FROM clients").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
