package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/platform/logger"
	"github.com/ledgerline/ledgerline/internal/store"
)

// PostgresPartyStore implements the store.PartyStore interface using a
// PostgreSQL database as the storage backend. One instance is bound to a
// single party kind and its table (businesses or clients); the two tables
// share a schema.
type PostgresPartyStore struct {
	db       store.DBTX
	kind     domain.PartyKind
	table    string
	notFound error
	logger   *slog.Logger
}

// NewPostgresBusinessStore creates the PartyStore bound to the businesses table.
func NewPostgresBusinessStore(db store.DBTX, logger *slog.Logger) *PostgresPartyStore {
	return newPartyStore(db, domain.PartyKindBusiness, "businesses", store.ErrBusinessNotFound, logger, "business_store")
}

// NewPostgresClientStore creates the PartyStore bound to the clients table.
func NewPostgresClientStore(db store.DBTX, logger *slog.Logger) *PostgresPartyStore {
	return newPartyStore(db, domain.PartyKindClient, "clients", store.ErrClientNotFound, logger, "client_store")
}

func newPartyStore(
	db store.DBTX,
	kind domain.PartyKind,
	table string,
	notFound error,
	logger *slog.Logger,
	component string,
) *PostgresPartyStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPartyStore{
		db:       db,
		kind:     kind,
		table:    table,
		notFound: notFound,
		logger:   logger.With(slog.String("component", component)),
	}
}

// Ensure PostgresPartyStore implements store.PartyStore interface
var _ store.PartyStore = (*PostgresPartyStore)(nil)

// WithTx implements store.PartyStore.WithTx
func (s *PostgresPartyStore) WithTx(tx *sql.Tx) store.PartyStore {
	return &PostgresPartyStore{
		db:       tx,
		kind:     s.kind,
		table:    s.table,
		notFound: s.notFound,
		logger:   s.logger,
	}
}

// Create implements store.PartyStore.Create
func (s *PostgresPartyStore) Create(ctx context.Context, party *domain.Party) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	party.Kind = s.kind
	if err := party.Validate(); err != nil {
		log.Warn("party validation failed during create",
			slog.String("error", err.Error()),
			slog.String("party_id", party.ID.String()))
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, name, email, street, city_state, zip, phone, is_hidden, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, s.table)

	_, err := s.db.ExecContext(
		ctx,
		query,
		party.ID,
		party.UserID,
		party.Name,
		party.Email,
		party.Street,
		party.CityState,
		party.Zip,
		party.Phone,
		party.IsHidden,
		party.CreatedAt,
		party.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate email during party creation",
				slog.String("party_id", party.ID.String()),
				slog.String("user_id", party.UserID.String()))
			return store.ErrEmailExists
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %s not found", store.ErrInvalidEntity, party.UserID)
		}

		log.Error("failed to create party",
			slog.String("error", err.Error()),
			slog.String("table", s.table),
			slog.String("party_id", party.ID.String()))
		return err
	}

	log.Info("party created",
		slog.String("table", s.table),
		slog.String("party_id", party.ID.String()),
		slog.String("user_id", party.UserID.String()))
	return nil
}

// GetByID implements store.PartyStore.GetByID
func (s *PostgresPartyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Party, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, email, street, city_state, zip, phone, is_hidden, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, s.table)

	return s.scanParty(s.db.QueryRowContext(ctx, query, id))
}

// GetByEmail implements store.PartyStore.GetByEmail
func (s *PostgresPartyStore) GetByEmail(ctx context.Context, userID uuid.UUID, email string) (*domain.Party, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, email, street, city_state, zip, phone, is_hidden, created_at, updated_at
		FROM %s
		WHERE user_id = $1 AND email = $2
	`, s.table)

	return s.scanParty(s.db.QueryRowContext(ctx, query, userID, email))
}

// ListByUserID implements store.PartyStore.ListByUserID
func (s *PostgresPartyStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Party, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT id, user_id, name, email, street, city_state, zip, phone, is_hidden, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, s.table)

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list parties",
			slog.String("error", err.Error()),
			slog.String("table", s.table),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	parties := []*domain.Party{}
	for rows.Next() {
		var p domain.Party
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Name,
			&p.Email,
			&p.Street,
			&p.CityState,
			&p.Zip,
			&p.Phone,
			&p.IsHidden,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		p.Kind = s.kind
		parties = append(parties, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return parties, nil
}

// Update implements store.PartyStore.Update
func (s *PostgresPartyStore) Update(ctx context.Context, party *domain.Party) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	party.Kind = s.kind
	if err := party.Validate(); err != nil {
		log.Warn("party validation failed during update",
			slog.String("error", err.Error()),
			slog.String("party_id", party.ID.String()))
		return err
	}

	party.UpdatedAt = time.Now().UTC()

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, email = $2, street = $3, city_state = $4, zip = $5, phone = $6, updated_at = $7
		WHERE id = $8
	`, s.table)

	result, err := s.db.ExecContext(
		ctx,
		query,
		party.Name,
		party.Email,
		party.Street,
		party.CityState,
		party.Zip,
		party.Phone,
		party.UpdatedAt,
		party.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrEmailExists
		}
		log.Error("failed to update party",
			slog.String("error", err.Error()),
			slog.String("table", s.table),
			slog.String("party_id", party.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return s.notFound
	}

	return nil
}

// Delete implements store.PartyStore.Delete
func (s *PostgresPartyStore) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete party",
			slog.String("error", err.Error()),
			slog.String("table", s.table),
			slog.String("party_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return s.notFound
	}

	return nil
}

// FindOrCreate implements store.PartyStore.FindOrCreate
// The found row is returned as-is; differing fields in the input are not
// applied. The lookup and insert are separate round-trips, so a concurrent
// create for the same (user, email) pair can surface as ErrEmailExists.
func (s *PostgresPartyStore) FindOrCreate(ctx context.Context, party *domain.Party) (*domain.Party, bool, error) {
	found, err := s.GetByEmail(ctx, party.UserID, party.Email)
	if err == nil {
		return found, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	if err := s.Create(ctx, party); err != nil {
		return nil, false, err
	}
	return party, true, nil
}

// SetVisible implements store.PartyStore.SetVisible
func (s *PostgresPartyStore) SetVisible(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_hidden = FALSE, updated_at = $2
		WHERE id = $1
	`, s.table)

	result, err := s.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return s.notFound
	}

	return nil
}

func (s *PostgresPartyStore) scanParty(row *sql.Row) (*domain.Party, error) {
	var p domain.Party
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Email,
		&p.Street,
		&p.CityState,
		&p.Zip,
		&p.Phone,
		&p.IsHidden,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.notFound
		}
		return nil, err
	}
	p.Kind = s.kind
	return &p, nil
}
