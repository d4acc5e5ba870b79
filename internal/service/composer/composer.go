package composer

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline/internal/domain"
	"github.com/ledgerline/ledgerline/internal/platform/logger"
	"github.com/ledgerline/ledgerline/internal/search"
	"github.com/ledgerline/ledgerline/internal/store"
)

// composerService implements the Service interface for one document kind.
type composerService struct {
	db         *sql.DB
	kind       domain.DocumentKind
	users      store.UserStore
	businesses store.PartyStore
	clients    store.PartyStore
	items      store.ItemStore
	docs       store.DocumentStore
	docItems   store.DocumentItemStore
	index      search.Index
	logger     *slog.Logger
}

// Config holds the dependencies of one composer instance.
type Config struct {
	DB            *sql.DB
	Kind          domain.DocumentKind
	UserStore     store.UserStore
	BusinessStore store.PartyStore
	ClientStore   store.PartyStore
	ItemStore     store.ItemStore
	DocumentStore store.DocumentStore
	DocItemStore  store.DocumentItemStore
	Index         search.Index
	Logger        *slog.Logger
}

// NewService creates a composer for the configured document kind.
func NewService(cfg Config) Service {
	if cfg.DB == nil {
		panic("db cannot be nil")
	}
	if cfg.Index == nil {
		cfg.Index = search.NewNoopIndex()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &composerService{
		db:         cfg.DB,
		kind:       cfg.Kind,
		users:      cfg.UserStore,
		businesses: cfg.BusinessStore,
		clients:    cfg.ClientStore,
		items:      cfg.ItemStore,
		docs:       cfg.DocumentStore,
		docItems:   cfg.DocItemStore,
		index:      cfg.Index,
		logger:     cfg.Logger.With(slog.String("component", "composer"), slog.String("kind", string(cfg.Kind))),
	}
}

// Ensure composerService implements Service interface
var _ Service = (*composerService)(nil)

// resolvedLine pairs a persisted item with its requested quantity.
type resolvedLine struct {
	item    *domain.Item
	qty     int
	created bool
}

// Create implements Service.Create
func (s *composerService) Create(ctx context.Context, userID uuid.UUID, in *DocumentInput) (*domain.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(in.Items) == 0 {
		return nil, ErrNoLineItems
	}

	var (
		result   *domain.Document
		mirrored []string
	)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		users := s.users.WithTx(tx)
		items := s.items.WithTx(tx)
		businesses := s.businesses.WithTx(tx)
		clients := s.clients.WithTx(tx)
		docs := s.docs.WithTx(tx)
		joins := s.docItems.WithTx(tx)

		lines := make([]resolvedLine, 0, len(in.Items))
		for _, li := range in.Items {
			if li.Quantity <= 0 {
				return domain.ErrInvalidQuantity
			}

			line, err := s.resolveLine(ctx, items, userID, li)
			if err != nil {
				return err
			}
			if line.created {
				mirrored = s.mirrorSave(ctx, mirrored, search.RecordFromItem(line.item))
			}
			lines = append(lines, line)
		}

		business, err := s.resolveParty(ctx, businesses, domain.PartyKindBusiness, userID, in.Business, &mirrored)
		if err != nil {
			return err
		}

		client, err := s.resolveParty(ctx, clients, domain.PartyKindClient, userID, in.Client, &mirrored)
		if err != nil {
			return err
		}

		docNumber, err := users.NextDocNumber(ctx, userID)
		if err != nil {
			return err
		}

		doc, err := domain.NewDocument(s.kind, userID, in.Title, in.Date)
		if err != nil {
			return err
		}
		doc.BusinessID = business.ID
		doc.ClientID = client.ID
		doc.DocNumber = docNumber
		doc.IsPaid = in.IsPaid
		doc.Notes = in.Notes

		if err := docs.Create(ctx, doc); err != nil {
			return err
		}

		for _, line := range lines {
			rec := &domain.DocumentItem{
				DocumentID: doc.ID,
				ItemID:     line.item.ID,
				Quantity:   line.qty,
			}
			if err := joins.Create(ctx, rec); err != nil {
				return err
			}
		}

		if err := businesses.SetVisible(ctx, business.ID); err != nil {
			return err
		}
		if err := clients.SetVisible(ctx, client.ID); err != nil {
			return err
		}
		for _, line := range lines {
			if !line.created {
				continue
			}
			if err := items.SetVisible(ctx, line.item.ID); err != nil {
				return err
			}
		}

		business.IsHidden = false
		client.IsHidden = false
		doc.Business = business
		doc.Client = client
		doc.Lines = make([]domain.LineItem, 0, len(lines))
		for _, line := range lines {
			item := *line.item
			if line.created {
				item.IsHidden = false
			}
			doc.Lines = append(doc.Lines, domain.LineItem{Item: item, Quantity: line.qty})
		}

		result = doc
		return nil
	})

	if err != nil {
		s.compensateMirror(ctx, mirrored)
		return nil, err
	}

	log.Info("document composed",
		slog.String("document_id", result.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int64("doc_number", result.DocNumber))
	return result, nil
}

// resolveLine resolves one requested line item: by id with an ownership
// check when the payload references an existing item, otherwise by
// find-or-create on the description key.
func (s *composerService) resolveLine(ctx context.Context, items store.ItemStore, userID uuid.UUID, li LineItemInput) (resolvedLine, error) {
	if li.ID != uuid.Nil {
		item, err := items.GetByID(ctx, li.ID)
		if err != nil {
			return resolvedLine{}, err
		}
		if item.UserID != userID {
			return resolvedLine{}, store.ErrNotOwned
		}
		return resolvedLine{item: item, qty: li.Quantity}, nil
	}

	candidate, err := domain.NewItem(userID, li.Description, li.Rate)
	if err != nil {
		return resolvedLine{}, err
	}

	found, created, err := items.FindOrCreate(ctx, candidate)
	if err != nil {
		return resolvedLine{}, err
	}
	return resolvedLine{item: found, qty: li.Quantity, created: created}, nil
}

// resolveParty resolves the business or client of a create payload via
// find-or-create on the email key, mirroring newly created rows.
func (s *composerService) resolveParty(
	ctx context.Context,
	parties store.PartyStore,
	kind domain.PartyKind,
	userID uuid.UUID,
	in PartyInput,
	mirrored *[]string,
) (*domain.Party, error) {
	candidate, err := domain.NewParty(kind, userID, in.Name, in.Email, in.Street, in.CityState, in.Zip, in.Phone)
	if err != nil {
		return nil, err
	}

	found, created, err := parties.FindOrCreate(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if created {
		*mirrored = s.mirrorSave(ctx, *mirrored, search.RecordFromParty(found))
	}
	return found, nil
}

// mirrorSave writes one record to the search index, best-effort. The
// returned slice includes the record's key only if the write succeeded, so
// compensation never deletes objects that were never indexed.
func (s *composerService) mirrorSave(ctx context.Context, mirrored []string, rec search.Record) []string {
	if err := s.index.SaveRecords(ctx, []search.Record{rec}); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("search index save failed",
			slog.String("error", err.Error()),
			slog.String("object_id", rec.ObjectID))
		return mirrored
	}
	return append(mirrored, rec.ObjectID)
}

// mirrorUpdate merges one record into the search index, best-effort.
func (s *composerService) mirrorUpdate(ctx context.Context, rec search.Record) {
	if err := s.index.PartialUpdateRecord(ctx, rec); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("search index update failed",
			slog.String("error", err.Error()),
			slog.String("object_id", rec.ObjectID))
	}
}

// compensateMirror deletes records that were indexed during a creation
// attempt whose transaction rolled back. Failures are logged, never
// re-raised, so the original error stays visible to the caller.
func (s *composerService) compensateMirror(ctx context.Context, mirrored []string) {
	if len(mirrored) == 0 {
		return
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	for _, objectID := range mirrored {
		if err := s.index.DeleteRecord(ctx, objectID); err != nil {
			log.Error("search index compensation failed",
				slog.String("error", err.Error()),
				slog.String("object_id", objectID))
		}
	}
	log.Debug("search index compensation complete",
		slog.Int("records", len(mirrored)))
}

// Update implements Service.Update
// Entity-level writes are applied eagerly in place; only the line item set
// is reconciled against the payload (full replace).
func (s *composerService) Update(ctx context.Context, userID, docID uuid.UUID, in *DocumentInput) (*domain.Document, error) {
	doc, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc.UserID != userID {
		return nil, store.ErrNotOwned
	}
	if in.ID != uuid.Nil && in.ID != docID {
		return nil, ErrIDMismatch
	}
	if len(in.Items) == 0 {
		return nil, ErrNoLineItems
	}

	lines := make([]resolvedLine, 0, len(in.Items))
	for _, li := range in.Items {
		if li.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}

		line, err := s.updateLine(ctx, userID, li)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	existing, err := s.docItems.ListByDocumentID(ctx, docID)
	if err != nil {
		return nil, err
	}
	joined := make(map[uuid.UUID]*domain.DocumentItem, len(existing))
	for _, rec := range existing {
		joined[rec.ItemID] = rec
	}

	keep := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		keep = append(keep, line.item.ID)

		if rec, ok := joined[line.item.ID]; ok {
			if rec.Quantity != line.qty {
				if err := s.docItems.UpdateQuantity(ctx, docID, line.item.ID, line.qty); err != nil {
					return nil, err
				}
			}
			continue
		}

		rec := &domain.DocumentItem{
			DocumentID: docID,
			ItemID:     line.item.ID,
			Quantity:   line.qty,
		}
		if err := s.docItems.Create(ctx, rec); err != nil {
			return nil, err
		}
	}

	if err := s.docItems.DeleteExcept(ctx, docID, keep); err != nil {
		return nil, err
	}

	if err := s.updateParty(ctx, s.businesses, userID, in.Business); err != nil {
		return nil, err
	}
	if err := s.updateParty(ctx, s.clients, userID, in.Client); err != nil {
		return nil, err
	}

	if in.Title != "" {
		doc.Title = in.Title
	}
	if !in.Date.IsZero() {
		doc.Date = in.Date
	}
	doc.IsPaid = in.IsPaid
	doc.Notes = in.Notes
	if err := s.docs.Update(ctx, doc); err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, docID)
}

// updateLine applies one submitted line item of an update payload: items
// addressed by id are updated in place after an ownership check, items
// without one are created fresh.
func (s *composerService) updateLine(ctx context.Context, userID uuid.UUID, li LineItemInput) (resolvedLine, error) {
	if li.ID == uuid.Nil {
		item, err := domain.NewItem(userID, li.Description, li.Rate)
		if err != nil {
			return resolvedLine{}, err
		}
		if err := s.items.Create(ctx, item); err != nil {
			return resolvedLine{}, err
		}
		s.mirrorUpdate(ctx, search.RecordFromItem(item))
		return resolvedLine{item: item, qty: li.Quantity, created: true}, nil
	}

	item, err := s.items.GetByID(ctx, li.ID)
	if err != nil {
		return resolvedLine{}, err
	}
	if item.UserID != userID {
		return resolvedLine{}, store.ErrNotOwned
	}

	changed := false
	if li.Description != "" && li.Description != item.Description {
		item.Description = li.Description
		changed = true
	}
	if !li.Rate.IsZero() && !li.Rate.Equal(item.Rate) {
		item.Rate = li.Rate
		changed = true
	}
	if changed {
		if err := s.items.Update(ctx, item); err != nil {
			return resolvedLine{}, err
		}
		s.mirrorUpdate(ctx, search.RecordFromItem(item))
	}

	return resolvedLine{item: item, qty: li.Quantity}, nil
}

// updateParty applies an in-place update to the document's business or
// client. A payload without a party id leaves the record untouched.
func (s *composerService) updateParty(ctx context.Context, parties store.PartyStore, userID uuid.UUID, in PartyInput) error {
	if in.ID == uuid.Nil {
		return nil
	}

	party, err := parties.GetByID(ctx, in.ID)
	if err != nil {
		return err
	}
	if party.UserID != userID {
		return store.ErrNotOwned
	}

	changed := false
	if in.Name != "" && in.Name != party.Name {
		party.Name = in.Name
		changed = true
	}
	if in.Email != "" && in.Email != party.Email {
		party.Email = in.Email
		changed = true
	}
	if in.Street != party.Street {
		party.Street = in.Street
		changed = true
	}
	if in.CityState != party.CityState {
		party.CityState = in.CityState
		changed = true
	}
	if in.Zip != party.Zip {
		party.Zip = in.Zip
		changed = true
	}
	if in.Phone != party.Phone {
		party.Phone = in.Phone
		changed = true
	}
	if !changed {
		return nil
	}

	if err := parties.Update(ctx, party); err != nil {
		return err
	}
	s.mirrorUpdate(ctx, search.RecordFromParty(party))
	return nil
}

// Delete implements Service.Delete
func (s *composerService) Delete(ctx context.Context, userID, docID uuid.UUID) error {
	doc, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if doc.UserID != userID {
		return store.ErrNotOwned
	}

	return s.docs.Delete(ctx, docID)
}

// Get implements Service.Get
func (s *composerService) Get(ctx context.Context, userID, docID uuid.UUID) (*domain.Document, error) {
	doc, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc.UserID != userID {
		return nil, store.ErrNotOwned
	}

	if err := s.assemble(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// List implements Service.List
func (s *composerService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Document, error) {
	docs, err := s.docs.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if err := s.assemble(ctx, doc); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

// assemble attaches the document's business, client, and line items.
func (s *composerService) assemble(ctx context.Context, doc *domain.Document) error {
	business, err := s.businesses.GetByID(ctx, doc.BusinessID)
	if err != nil {
		return err
	}
	doc.Business = business

	client, err := s.clients.GetByID(ctx, doc.ClientID)
	if err != nil {
		return err
	}
	doc.Client = client

	joins, err := s.docItems.ListByDocumentID(ctx, doc.ID)
	if err != nil {
		return err
	}

	doc.Lines = make([]domain.LineItem, 0, len(joins))
	for _, rec := range joins {
		item, err := s.items.GetByID(ctx, rec.ItemID)
		if err != nil {
			return err
		}
		doc.Lines = append(doc.Lines, domain.LineItem{Item: *item, Quantity: rec.Quantity})
	}

	return nil
}
