package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pantry/backend/internal/domain/catalog"
	"github.com/pantry/backend/internal/domain/ledger"
	"github.com/pantry/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLedgerRepository implements ledger.Repository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// ListEntries returns entries in the filter window, sorted ascending by
// date. The window is inclusive on both ends.
func (r *GormLedgerRepository) ListEntries(ctx context.Context, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	query := r.db.WithContext(ctx).Model(&ledger.Entry{})

	if !filter.Start.IsZero() {
		query = query.Where("date >= ?", filter.Start)
	}
	if !filter.End.IsZero() {
		query = query.Where("date <= ?", filter.End)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}

	var entries []ledger.Entry
	if err := query.Order("date ASC, created_at ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListCatalog returns the full product catalog sorted by name
func (r *GormLedgerRepository) ListCatalog(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID finds a ledger entry by its ID
func (r *GormLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	var entry ledger.Entry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Save creates or updates a ledger entry
func (r *GormLedgerRepository) Save(ctx context.Context, entry *ledger.Entry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete removes a ledger entry by ID
func (r *GormLedgerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Entry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
