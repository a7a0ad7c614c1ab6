package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pantry/backend/internal/domain/catalog"
	"github.com/pantry/backend/internal/domain/ledger"
	"github.com/pantry/backend/internal/domain/shared"
)

// LedgerService handles stock movement recording and querying.
// Writes do not touch the report cache; reports may trail the ledger
// by up to the cache TTL.
type LedgerService struct {
	ledgerRepo  ledger.Repository
	productRepo catalog.ProductRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledgerRepo ledger.Repository, productRepo catalog.ProductRepository) *LedgerService {
	return &LedgerService{
		ledgerRepo:  ledgerRepo,
		productRepo: productRepo,
	}
}

// Record creates a new ledger entry after checking the product exists.
// Unknown products are rejected at write time so the aggregator's
// skip diagnostics only ever surface historical inconsistencies.
func (s *LedgerService) Record(ctx context.Context, req RecordEntryRequest) (*EntryResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNKNOWN_PRODUCT", "Cannot record movement for unknown product")
		}
		return nil, err
	}

	entry, err := ledger.NewEntry(req.ProductID, req.Date, ledger.EntryKind(req.Kind), req.Quantity, req.Amount)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	response := ToEntryResponse(entry)
	return &response, nil
}

// List returns ledger entries matching the filter, sorted by date
func (s *LedgerService) List(ctx context.Context, filter ListEntriesFilter) ([]EntryResponse, error) {
	entries, err := s.ledgerRepo.ListEntries(ctx, ledger.EntryFilter{
		ProductID: filter.ProductID,
		Start:     filter.Start,
		End:       filter.End,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses, nil
}

// Delete removes a ledger entry
func (s *LedgerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.ledgerRepo.Delete(ctx, id)
}

// ImportSnapshots converts cumulative balance snapshots into tagged
// delta entries and stores them. Used when backfilling from systems
// that export running balances instead of movements.
func (s *LedgerService) ImportSnapshots(ctx context.Context, snapshots []ledger.Snapshot) (int, error) {
	entries := ledger.NormalizeSnapshots(snapshots)
	for i := range entries {
		if err := s.ledgerRepo.Save(ctx, &entries[i]); err != nil {
			return i, err
		}
	}
	return len(entries), nil
}
